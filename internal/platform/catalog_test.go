package platform_test

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/google/go-cmp/cmp"
	"github.com/logandonley/fontmatch/internal/platform"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Catalog", func() {
	var (
		catalog *platform.Catalog
		dir     string
		reads   int
	)

	table := map[string][]platform.Face{
		"sans.ttf":      {{Family: "Test Sans", FullName: "Test Sans Regular", Style: "Regular", Weight: 400, PitchAndFamily: 0x22}},
		"sans-bold.ttf": {{Family: "Test Sans", FullName: "Test Sans Bold", Style: "Bold", Weight: 700, PitchAndFamily: 0x22}},
		"sans-copy.ttf": {{Family: "test sans", FullName: "Test Sans Regular", Style: "Regular", Weight: 400, PitchAndFamily: 0x22}},
		"symbol.ttf":    {{Family: "Test Sans", FullName: "Test Sans Symbol", Style: "Regular", Weight: 400, PitchAndFamily: 0x22, CharSet: 0x02}},
		"empty.ttf":     {},
	}

	path := func(name string) string {
		return filepath.Join(dir, name)
	}

	BeforeEach(func() {
		var err error
		dir, err = os.MkdirTemp("", "catalog-test-*")
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(os.RemoveAll, dir)
		reads = 0
		catalog = platform.NewCatalog(func(p string) ([]platform.Face, error) {
			reads++
			faces, ok := table[filepath.Base(p)]
			if !ok {
				return nil, errors.New("unknown font")
			}
			return faces, nil
		}, GinkgoLogr)
	})

	Describe("adding resources", func() {
		It("should report the number of faces added", func() {
			Expect(catalog.AddFontResource(path("sans.ttf"))).To(Equal(1))
			Expect(catalog.Len()).To(Equal(1))
		})

		It("should read a file once however often it is added", func() {
			Expect(catalog.AddFontResource(path("sans.ttf"))).To(Equal(1))
			Expect(catalog.AddFontResource(path("sans.ttf"))).To(Equal(1))
			Expect(reads).To(Equal(1))
			Expect(catalog.Len()).To(Equal(1))
		})

		It("should add nothing for unreadable or empty files", func() {
			Expect(catalog.AddFontResource(path("missing.ttf"))).To(BeZero())
			Expect(catalog.AddFontResource(path("empty.ttf"))).To(BeZero())
			Expect(catalog.AddFontResource("")).To(BeZero())
			Expect(catalog.Len()).To(BeZero())
		})

		It("should keep the file until every addition is removed", func() {
			catalog.AddFontResource(path("sans.ttf"))
			catalog.AddFontResource(path("sans.ttf"))

			Expect(catalog.RemoveFontResource(path("sans.ttf"))).To(Equal(1))
			Expect(catalog.Len()).To(Equal(1))
			Expect(catalog.RemoveFontResource(path("sans.ttf"))).To(Equal(1))
			Expect(catalog.Len()).To(BeZero())
			Expect(catalog.RemoveFontResource(path("sans.ttf"))).To(BeZero())
		})
	})

	Describe("enumerating", func() {
		BeforeEach(func() {
			for _, name := range []string{"sans-bold.ttf", "sans.ttf", "symbol.ttf"} {
				Expect(catalog.AddFontResource(path(name))).To(Equal(1))
			}
		})

		It("should list the family in registration order", func() {
			fonts, err := catalog.EnumFonts("TEST SANS", 400, false, 0x01)
			Expect(err).NotTo(HaveOccurred())

			var got []string
			for _, f := range fonts {
				got = append(got, filepath.Base(f.Path))
			}
			Expect(cmp.Diff([]string{"sans-bold.ttf", "sans.ttf", "symbol.ttf"}, got)).To(BeEmpty())
		})

		It("should filter by character set unless the default is asked for", func() {
			fonts, err := catalog.EnumFonts("Test Sans", 400, false, 0x02)
			Expect(err).NotTo(HaveOccurred())
			Expect(fonts).To(HaveLen(1))
			Expect(fonts[0].FullName).To(Equal("Test Sans Symbol"))
			Expect(fonts[0].Script).To(Equal("Symbol"))
		})

		It("should report outline font attributes", func() {
			fonts, err := catalog.EnumFonts("Test Sans", 400, false, 0x00)
			Expect(err).NotTo(HaveOccurred())
			Expect(fonts).To(HaveLen(2))

			want := platform.EnumeratedFont{
				LogFont: platform.LogFont{
					Weight:         700,
					OutPrecision:   3,
					ClipPrecision:  2,
					Quality:        1,
					PitchAndFamily: 0x22,
					FaceName:       "Test Sans",
				},
				FullName: "Test Sans Bold",
				Style:    "Bold",
				Script:   "Western",
				Path:     path("sans-bold.ttf"),
			}
			Expect(cmp.Diff(want, fonts[0])).To(BeEmpty())
		})

		It("should return nothing for other families", func() {
			fonts, err := catalog.EnumFonts("Other", 400, false, 0x01)
			Expect(err).NotTo(HaveOccurred())
			Expect(fonts).To(BeEmpty())
		})
	})

	Describe("resolving faces", func() {
		regular := platform.LogFont{Weight: 400, PitchAndFamily: 0x22, FaceName: "Test Sans"}

		It("should return the file declaring the face", func() {
			catalog.AddFontResource(path("sans.ttf"))
			catalog.AddFontResource(path("sans-bold.ttf"))

			got, err := catalog.ResolveFace(regular)
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(Equal(path("sans.ttf")))
		})

		It("should prefer the most recently added file", func() {
			catalog.AddFontResource(path("sans.ttf"))
			catalog.AddFontResource(path("sans-copy.ttf"))

			got, err := catalog.ResolveFace(regular)
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(Equal(path("sans-copy.ttf")))
		})

		It("should return the selected file when it declares the face", func() {
			catalog.AddFontResource(path("sans.ttf"))
			catalog.AddFontResource(path("sans-copy.ttf"))

			lf := regular
			lf.File = path("sans.ttf")
			got, err := catalog.ResolveFace(lf)
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(Equal(path("sans.ttf")))
		})

		It("should ignore a selected file that lacks the face", func() {
			catalog.AddFontResource(path("sans.ttf"))
			catalog.AddFontResource(path("sans-bold.ttf"))

			lf := regular
			lf.File = path("sans-bold.ttf")
			got, err := catalog.ResolveFace(lf)
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(Equal(path("sans.ttf")))

			lf.File = path("unregistered.ttf")
			got, err = catalog.ResolveFace(lf)
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(Equal(path("sans.ttf")))
		})

		It("should fail when no face has the exact attributes", func() {
			catalog.AddFontResource(path("sans.ttf"))

			italic := regular
			italic.Italic = true
			_, err := catalog.ResolveFace(italic)
			Expect(err).To(MatchError(platform.ErrFaceNotFound))
		})
	})

	Describe("indexing directories", func() {
		It("should add every font file below the directory", func() {
			Expect(os.MkdirAll(path("nested"), 0755)).To(Succeed())
			for _, name := range []string{"sans.ttf", "nested/sans-bold.ttf", "nested/readme.txt", "missing.otf"} {
				Expect(os.WriteFile(path(name), nil, 0644)).To(Succeed())
			}

			added, err := catalog.AddSystemDir(dir)
			Expect(err).NotTo(HaveOccurred())
			Expect(added).To(Equal(2))
			Expect(catalog.Len()).To(Equal(2))
		})

		It("should report a missing directory", func() {
			_, err := catalog.AddSystemDir(path("nope"))
			Expect(err).To(MatchError(os.ErrNotExist))
		})
	})

	Describe("path normalisation", func() {
		It("should reject blank paths", func() {
			_, err := platform.NormalizePath(" ")
			Expect(err).To(HaveOccurred())
		})

		It("should make paths absolute and clean", func() {
			got, err := platform.NormalizePath(filepath.Join(dir, "a", "..", "sans.ttf"))
			Expect(err).NotTo(HaveOccurred())
			want := path("sans.ttf")
			if platform.CaseInsensitivePaths() {
				want = platform.FoldName(want)
			}
			Expect(got).To(Equal(want))
		})

		DescribeTable("recognising font files",
			func(name string, want bool) {
				Expect(platform.IsFontFile(name)).To(Equal(want))
			},
			Entry("truetype", "sans.ttf", true),
			Entry("opentype", "sans.otf", true),
			Entry("upper-case extension", "SANS.TTF", true),
			Entry("collection", "sans.ttc", false),
			Entry("archive", "sans.zip", false),
			Entry("no extension", "ttf", false),
		)

		It("should fold names case-insensitively", func() {
			Expect(platform.FoldName("Straße")).To(Equal(platform.FoldName("STRASSE")))
		})
	})
})
