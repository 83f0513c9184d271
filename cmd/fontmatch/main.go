package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"
	"github.com/logandonley/fontmatch/pkg/fm"
	"github.com/spf13/cobra"
	"golang.org/x/term"
	"seehuhn.de/go/sfnt/os2"
)

const pipeName = "-"

var (
	manager *fm.DefaultManager

	fontPaths   []string
	fontList    string
	systemFonts bool
	verbosity   int

	weight      string
	italic      bool
	pitch       string
	familyClass string
	charSet     string
)

func main() {
	err := rootCmd.Execute()
	if manager != nil {
		if cerr := manager.Close(); cerr != nil {
			fmt.Fprintf(os.Stderr, "Error releasing fonts: %v\n", cerr)
		}
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "fontmatch",
	Short: "fontmatch finds the font file a renderer would pick",
	Long: `Find the installed font the platform selects for a logical font request,
the way subtitle renderers ask for fonts.

Fonts given with --font or --file are registered for the duration of the
command and released when it exits.

Examples:
  # Which file backs Arial Bold?
  fontmatch resolve Arial --weight bold

  # Rank every face of a family after registering extra fonts
  fontmatch candidates "Noto Sans" -F ./NotoSans-Regular.ttf -F ./NotoSans-Bold.ttf

  # Register the fonts listed in a file, one path per line
  fontmatch match "Open Sans" -f fonts.txt`,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		manager = fm.NewManager(fm.WithLogger(newLogger(verbosity)))

		if systemFonts {
			if _, err := manager.LoadSystemFonts(); err != nil {
				return fmt.Errorf("loading system fonts: %w", err)
			}
		}

		for _, path := range fontPaths {
			if fm.IsArchive(path) {
				if _, err := manager.RegisterArchive(path); err != nil {
					return fmt.Errorf("registering font archive: %w", err)
				}
				continue
			}
			if err := manager.Register(path); err != nil {
				return fmt.Errorf("registering font: %w", err)
			}
		}

		if fontList != "" {
			src, closeFn, err := openFontList(fontList)
			if err != nil {
				return err
			}
			defer closeFn()

			if err := manager.RegisterFromConfig(src); err != nil {
				return fmt.Errorf("registering fonts from %s: %w", fontList, err)
			}
		}
		return nil
	},
}

var matchCmd = &cobra.Command{
	Use:   "match [family]",
	Short: "Show the font selected for a request",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := buildRequest(args[0])
		if err != nil {
			return err
		}

		best, ok, err := manager.FindBestMatch(req)
		if err != nil {
			return fmt.Errorf("matching %s: %w", args[0], err)
		}
		if !ok {
			fmt.Printf("No font found for %q\n", args[0])
			return nil
		}

		fmt.Println(best)
		if best.Path != "" {
			fmt.Printf("  file:  %s\n", best.Path)
		}
		if best.Order > 0 {
			fmt.Printf("  order: %d\n", best.Order)
		}
		return nil
	},
}

var resolveCmd = &cobra.Command{
	Use:   "resolve [family]",
	Short: "Print the file backing the font selected for a request",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := buildRequest(args[0])
		if err != nil {
			return err
		}

		path, ok, err := manager.MatchFile(req)
		if err != nil {
			return fmt.Errorf("resolving %s: %w", args[0], err)
		}
		if !ok {
			return fmt.Errorf("no font found for %q", args[0])
		}

		fmt.Println(path)
		return nil
	},
}

var candidatesCmd = &cobra.Command{
	Use:   "candidates [family]",
	Short: "List every installed face of a family, best match first",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := buildRequest(args[0])
		if err != nil {
			return err
		}

		ranked, err := manager.Rank(req)
		if err != nil {
			return fmt.Errorf("ranking %s: %w", args[0], err)
		}
		if len(ranked) == 0 {
			fmt.Printf("No font found for %q\n", args[0])
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "SCORE\tORDER\tNAME\tWEIGHT\tITALIC\tPITCH|FAMILY\tCHARSET\tFILE")
		for _, s := range ranked {
			fmt.Fprintf(w, "%d\t%d\t%s\t%d\t%t\t%s\t%s\t%s\n",
				s.Score, s.Order, s.FullNameOrFace(), s.Weight, s.Italic,
				fm.Pack(s.Pitch, s.FamilyClass), s.CharSet, s.Path)
		}
		return w.Flush()
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the fonts registered for this command",
	RunE: func(cmd *cobra.Command, args []string) error {
		fonts := manager.Registered()
		if len(fonts) == 0 {
			fmt.Println("No fonts registered")
			return nil
		}

		fmt.Println("Registered fonts:")
		for _, font := range fonts {
			if font.Count > 1 {
				fmt.Printf("  %d. %s (x%d)\n", font.Order, font.Path, font.Count)
			} else {
				fmt.Printf("  %d. %s\n", font.Order, font.Path)
			}
		}
		return nil
	},
}

func buildRequest(family string) (fm.Request, error) {
	req := fm.DefaultRequest(family)
	req.Italic = italic

	w, err := parseWeight(weight)
	if err != nil {
		return req, err
	}
	req.Weight = w

	if req.Pitch, err = fm.ParsePitch(pitch); err != nil {
		return req, err
	}
	if req.FamilyClass, err = fm.ParseFamilyClass(familyClass); err != nil {
		return req, err
	}
	if req.CharSet, err = fm.ParseCharSet(charSet); err != nil {
		return req, err
	}
	return req, nil
}

// parseWeight accepts a numeric weight or a name such as "bold".
func parseWeight(s string) (int, error) {
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	if w := os2.WeightFromString(s); w != 0 {
		return int(w), nil
	}
	return 0, fmt.Errorf("unknown weight %q", s)
}

func openFontList(name string) (io.Reader, func(), error) {
	if name == pipeName {
		if term.IsTerminal(int(os.Stdin.Fd())) {
			return nil, nil, errors.New("`-` should be used with a pipe for stdin")
		}
		return os.Stdin, func() {}, nil
	}

	file, err := os.Open(name)
	if err != nil {
		return nil, nil, fmt.Errorf("opening font list: %w", err)
	}
	return file, func() { file.Close() }, nil
}

func newLogger(v int) logr.Logger {
	return funcr.New(func(prefix, args string) {
		if prefix != "" {
			fmt.Fprintf(os.Stderr, "%s: %s\n", prefix, args)
			return
		}
		fmt.Fprintln(os.Stderr, args)
	}, funcr.Options{Verbosity: v})
}

func init() {
	rootCmd.AddCommand(matchCmd)
	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(candidatesCmd)
	rootCmd.AddCommand(listCmd)

	rootCmd.PersistentFlags().StringArrayVarP(&fontPaths, "font", "F", nil, "Register a font file or .zip of fonts (repeatable)")
	rootCmd.PersistentFlags().StringVarP(&fontList, "file", "f", "", "Register the fonts listed in a file, - for stdin")
	rootCmd.PersistentFlags().BoolVar(&systemFonts, "system-fonts", false, "Load the fonts installed in the system and user font directories")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Log registration and scoring details (repeat for more)")

	for _, cmd := range []*cobra.Command{matchCmd, resolveCmd, candidatesCmd} {
		cmd.Flags().StringVar(&weight, "weight", strconv.Itoa(fm.DefaultWeight), "Font weight, numeric or a name such as bold")
		cmd.Flags().BoolVar(&italic, "italic", false, "Request an italic face")
		cmd.Flags().StringVar(&pitch, "pitch", fm.PitchDefault.String(), "Pitch: default, fixed or variable")
		cmd.Flags().StringVar(&familyClass, "family-class", fm.FamilyDontCare.String(), "Family class: dontcare, roman, swiss, modern, script or decorative")
		cmd.Flags().StringVar(&charSet, "charset", fm.DefaultCharSet.String(), "Character set, such as default, ansi or shiftjis")
	}
}
