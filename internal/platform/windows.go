//go:build windows

package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"syscall"
	"unsafe"

	"github.com/go-logr/logr"
	"golang.org/x/sys/windows"
)

var (
	gdi32  = windows.NewLazySystemDLL("gdi32.dll")
	user32 = windows.NewLazySystemDLL("user32.dll")
	dwrite = windows.NewLazySystemDLL("dwrite.dll")

	procAddFontResourceW    = gdi32.NewProc("AddFontResourceW")
	procRemoveFontResourceW = gdi32.NewProc("RemoveFontResourceW")
	procEnumFontFamiliesExW = gdi32.NewProc("EnumFontFamiliesExW")
	procCreateCompatibleDC  = gdi32.NewProc("CreateCompatibleDC")
	procDeleteDC            = gdi32.NewProc("DeleteDC")
	procCreateFontIndirectW = gdi32.NewProc("CreateFontIndirectW")
	procSelectObject        = gdi32.NewProc("SelectObject")
	procDeleteObject        = gdi32.NewProc("DeleteObject")
	procPostMessageW        = user32.NewProc("PostMessageW")
	procDWriteCreateFactory = dwrite.NewProc("DWriteCreateFactory")
)

const (
	hwndBroadcast = 0xffff
	wmFontChange  = 0x001d

	// Request attributes used by subtitle renderers when they build a LOGFONT.
	outTTPrecis       = 4 // OUT_TT_PRECIS
	clipDefaultPrecis = 0 // CLIP_DEFAULT_PRECIS
	antialiasQuality  = 4 // ANTIALIASED_QUALITY

	dwriteFactoryIsolated = 1
)

// Vtable slots, counted from IUnknown's QueryInterface.
const (
	vtQueryInterface = 0
	vtRelease        = 2

	vtFactoryGetGdiInterop          = 17
	vtInteropCreateFontFaceFromHdc  = 6
	vtFaceGetFiles                  = 4
	vtFileGetReferenceKey           = 3
	vtFileGetLoader                 = 4
	vtLocalGetFilePathLengthFromKey = 4
	vtLocalGetFilePathFromKey       = 5
)

// HGDI_ERROR
const hgdiError = ^uintptr(0)

var (
	iidDWriteFactory = windows.GUID{
		Data1: 0xb859ee5a, Data2: 0xd838, Data3: 0x4b5b,
		Data4: [8]byte{0xa2, 0xe8, 0x1a, 0xdc, 0x7d, 0x93, 0xdb, 0x48},
	}
	iidLocalFontFileLoader = windows.GUID{
		Data1: 0xb2d9f3ec, Data2: 0xc9fe, Data3: 0x4a11,
		Data4: [8]byte{0xa2, 0xec, 0xd8, 0x62, 0x08, 0xf7, 0xc0, 0xa2},
	}
)

type logFontW struct {
	Height         int32
	Width          int32
	Escapement     int32
	Orientation    int32
	Weight         int32
	Italic         uint8
	Underline      uint8
	StrikeOut      uint8
	CharSet        uint8
	OutPrecision   uint8
	ClipPrecision  uint8
	Quality        uint8
	PitchAndFamily uint8
	FaceName       [32]uint16
}

type enumLogFontExW struct {
	LogFont  logFontW
	FullName [64]uint16
	Style    [32]uint16
	Script   [32]uint16
}

type windowsManager struct {
	log logr.Logger
}

func newManager(_ string, log logr.Logger) Manager {
	return &windowsManager{log: log}
}

func (m *windowsManager) GetFontPaths() (FontPaths, error) {
	winDir, err := windows.GetWindowsDirectory()
	if err != nil {
		return FontPaths{}, fmt.Errorf("getting windows directory: %w", err)
	}
	localAppData, err := os.UserCacheDir()
	if err != nil {
		return FontPaths{}, fmt.Errorf("getting local application data directory: %w", err)
	}
	return FontPaths{
		SystemDir: filepath.Join(winDir, "Fonts"),
		UserDir:   filepath.Join(localAppData, "Microsoft", "Windows", "Fonts"),
	}, nil
}

func (m *windowsManager) AddFontResource(path string) int {
	p, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return 0
	}
	n, _, _ := procAddFontResourceW.Call(uintptr(unsafe.Pointer(p)))
	return int(int32(n))
}

func (m *windowsManager) RemoveFontResource(path string) int {
	p, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return 0
	}
	ok, _, _ := procRemoveFontResourceW.Call(uintptr(unsafe.Pointer(p)))
	if ok == 0 {
		return 0
	}
	return 1
}

// NotifyFontChange posts WM_FONTCHANGE to all top-level windows without
// waiting for them to handle it.
func (m *windowsManager) NotifyFontChange() error {
	ok, _, err := procPostMessageW.Call(hwndBroadcast, wmFontChange, 0, 0)
	if ok == 0 {
		return fmt.Errorf("broadcasting font change: %w", err)
	}
	return nil
}

// EnumFontFamiliesExW reports through a callback. Callbacks created with
// NewCallback are never freed, so a single one is shared and the results
// are collected in enumSink under enumMu.
var (
	enumMu       sync.Mutex
	enumSink     []EnumeratedFont
	enumCallback uintptr
	enumOnce     sync.Once
)

func enumProc(elf *enumLogFontExW, _, _, _ uintptr) uintptr {
	lf := elf.LogFont
	enumSink = append(enumSink, EnumeratedFont{
		LogFont: LogFont{
			Weight:         lf.Weight,
			Italic:         lf.Italic != 0,
			Underline:      lf.Underline != 0,
			StrikeOut:      lf.StrikeOut != 0,
			CharSet:        lf.CharSet,
			OutPrecision:   lf.OutPrecision,
			ClipPrecision:  lf.ClipPrecision,
			Quality:        lf.Quality,
			PitchAndFamily: lf.PitchAndFamily,
			FaceName:       windows.UTF16ToString(lf.FaceName[:]),
		},
		FullName: windows.UTF16ToString(elf.FullName[:]),
		Style:    windows.UTF16ToString(elf.Style[:]),
		Script:   windows.UTF16ToString(elf.Script[:]),
	})
	return 1
}

func (m *windowsManager) EnumFonts(family string, weight int32, italic bool, charset uint8) ([]EnumeratedFont, error) {
	enumOnce.Do(func() {
		enumCallback = windows.NewCallback(enumProc)
	})
	lf, err := toLogFontW(LogFont{
		Weight:         weight,
		Italic:         italic,
		CharSet:        charset,
		OutPrecision:   outTTPrecis,
		ClipPrecision:  clipDefaultPrecis,
		Quality:        antialiasQuality,
		PitchAndFamily: 0,
		FaceName:       family,
	})
	if err != nil {
		return nil, err
	}

	dc, _, callErr := procCreateCompatibleDC.Call(0)
	if dc == 0 {
		return nil, fmt.Errorf("creating device context: %w", callErr)
	}
	defer procDeleteDC.Call(dc)

	enumMu.Lock()
	defer enumMu.Unlock()
	enumSink = nil
	procEnumFontFamiliesExW.Call(dc, uintptr(unsafe.Pointer(lf)), enumCallback, 0, 0)
	fonts := enumSink
	enumSink = nil
	m.log.V(2).Info("enumerated fonts", "family", family, "count", len(fonts))
	return fonts, nil
}

// ResolveFace selects lf into a memory DC and asks DirectWrite which file
// backs the realized font face. Every handle and interface acquired on the
// way is released before returning.
func (m *windowsManager) ResolveFace(lf LogFont) (string, error) {
	native, err := toLogFontW(lf)
	if err != nil {
		return "", err
	}

	dc, _, callErr := procCreateCompatibleDC.Call(0)
	if dc == 0 {
		return "", fmt.Errorf("creating device context: %w", callErr)
	}
	defer procDeleteDC.Call(dc)

	hfont, _, callErr := procCreateFontIndirectW.Call(uintptr(unsafe.Pointer(native)))
	if hfont == 0 {
		return "", fmt.Errorf("creating font %q: %w", lf.FaceName, callErr)
	}
	defer procDeleteObject.Call(hfont)

	prev, _, callErr := procSelectObject.Call(dc, hfont)
	if prev == 0 || prev == hgdiError {
		return "", fmt.Errorf("selecting font %q: %w", lf.FaceName, callErr)
	}
	defer procSelectObject.Call(dc, prev)

	factory := new(*comObject)
	hr, _, _ := procDWriteCreateFactory.Call(
		dwriteFactoryIsolated,
		uintptr(unsafe.Pointer(&iidDWriteFactory)),
		uintptr(unsafe.Pointer(factory)))
	if err := hresult("DWriteCreateFactory", hr); err != nil {
		return "", err
	}
	defer (*factory).release()

	interop := new(*comObject)
	hr, _, _ = syscall.SyscallN((*factory).method(vtFactoryGetGdiInterop),
		uintptr(unsafe.Pointer(*factory)),
		uintptr(unsafe.Pointer(interop)))
	if err := hresult("GetGdiInterop", hr); err != nil {
		return "", err
	}
	defer (*interop).release()

	face := new(*comObject)
	hr, _, _ = syscall.SyscallN((*interop).method(vtInteropCreateFontFaceFromHdc),
		uintptr(unsafe.Pointer(*interop)),
		dc,
		uintptr(unsafe.Pointer(face)))
	if err := hresult("CreateFontFaceFromHdc", hr); err != nil {
		return "", err
	}
	defer (*face).release()

	numFiles := new(uint32)
	*numFiles = 1
	file := new(*comObject)
	hr, _, _ = syscall.SyscallN((*face).method(vtFaceGetFiles),
		uintptr(unsafe.Pointer(*face)),
		uintptr(unsafe.Pointer(numFiles)),
		uintptr(unsafe.Pointer(file)))
	if err := hresult("GetFiles", hr); err != nil {
		return "", err
	}
	defer (*file).release()

	key := new(uintptr)
	keySize := new(uint32)
	hr, _, _ = syscall.SyscallN((*file).method(vtFileGetReferenceKey),
		uintptr(unsafe.Pointer(*file)),
		uintptr(unsafe.Pointer(key)),
		uintptr(unsafe.Pointer(keySize)))
	if err := hresult("GetReferenceKey", hr); err != nil {
		return "", err
	}

	loader := new(*comObject)
	hr, _, _ = syscall.SyscallN((*file).method(vtFileGetLoader),
		uintptr(unsafe.Pointer(*file)),
		uintptr(unsafe.Pointer(loader)))
	if err := hresult("GetLoader", hr); err != nil {
		return "", err
	}
	defer (*loader).release()

	local := new(*comObject)
	hr, _, _ = syscall.SyscallN((*loader).method(vtQueryInterface),
		uintptr(unsafe.Pointer(*loader)),
		uintptr(unsafe.Pointer(&iidLocalFontFileLoader)),
		uintptr(unsafe.Pointer(local)))
	if err := hresult("QueryInterface(IDWriteLocalFontFileLoader)", hr); err != nil {
		return "", err
	}
	defer (*local).release()

	pathLen := new(uint32)
	hr, _, _ = syscall.SyscallN((*local).method(vtLocalGetFilePathLengthFromKey),
		uintptr(unsafe.Pointer(*local)),
		*key,
		uintptr(*keySize),
		uintptr(unsafe.Pointer(pathLen)))
	if err := hresult("GetFilePathLengthFromKey", hr); err != nil {
		return "", err
	}

	buf := make([]uint16, *pathLen+1)
	hr, _, _ = syscall.SyscallN((*local).method(vtLocalGetFilePathFromKey),
		uintptr(unsafe.Pointer(*local)),
		*key,
		uintptr(*keySize),
		uintptr(unsafe.Pointer(&buf[0])),
		uintptr(len(buf)))
	if err := hresult("GetFilePathFromKey", hr); err != nil {
		return "", err
	}

	return windows.UTF16ToString(buf), nil
}

type comObject struct {
	vtbl *[32]uintptr
}

func (o *comObject) method(slot int) uintptr {
	return o.vtbl[slot]
}

func (o *comObject) release() {
	if o == nil {
		return
	}
	syscall.SyscallN(o.method(vtRelease), uintptr(unsafe.Pointer(o)))
}

func hresult(op string, hr uintptr) error {
	if int32(hr) < 0 {
		return fmt.Errorf("%s failed: HRESULT 0x%08X", op, uint32(hr))
	}
	return nil
}

func toLogFontW(lf LogFont) (*logFontW, error) {
	name, err := windows.UTF16FromString(lf.FaceName)
	if err != nil {
		return nil, fmt.Errorf("encoding face name %q: %w", lf.FaceName, err)
	}
	native := &logFontW{
		Weight:         lf.Weight,
		Italic:         boolByte(lf.Italic),
		Underline:      boolByte(lf.Underline),
		StrikeOut:      boolByte(lf.StrikeOut),
		CharSet:        lf.CharSet,
		OutPrecision:   lf.OutPrecision,
		ClipPrecision:  lf.ClipPrecision,
		Quality:        lf.Quality,
		PitchAndFamily: lf.PitchAndFamily,
	}
	if len(name) > len(native.FaceName) {
		return nil, fmt.Errorf("face name %q exceeds %d characters", lf.FaceName, len(native.FaceName)-1)
	}
	copy(native.FaceName[:], name)
	return native, nil
}

func boolByte(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
