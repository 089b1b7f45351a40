package main

import (
	"context"
	"fmt"
	"io/fs"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/OpticalFlyer/teeforge/config"
	"github.com/OpticalFlyer/teeforge/content"
	"github.com/OpticalFlyer/teeforge/design"
	"github.com/OpticalFlyer/teeforge/garment"
	"github.com/OpticalFlyer/teeforge/placement"
	"github.com/OpticalFlyer/teeforge/proj"
	"github.com/OpticalFlyer/teeforge/surface"
	"github.com/OpticalFlyer/teeforge/ui"
)

const (
	previewWidth = 200.0
	sidebarPad   = 16.0
	sidebarWidth = previewWidth + 2*sidebarPad
	turnStep     = 15.0
)

// Designer implements ebiten.Game.
type Designer struct {
	ctx    context.Context
	logger *log.Logger

	ctrl    *ui.Controller
	tracker *ui.Tracker
	toolbar *ui.Toolbar
	surface *surface.Surface
	preview *surface.Surface

	wearer    config.Measurements
	imageName string
	text      string
	editor    *content.Editor
	runes     []rune
	status    string
	debugMode bool

	// Touch state
	touchID    ebiten.TouchID
	touching   bool
	lastTouchX map[ebiten.TouchID]float64
	lastTouchY map[ebiten.TouchID]float64
}

func runDesigner(ctx context.Context, cfg config.Config) error {
	d, err := newDesigner(ctx, cfg)
	if err != nil {
		return err
	}

	d.logger.Info("designer starting", "grid", cfg.GridSize, "canvas", fmt.Sprintf("%dx%d", cfg.Window.CanvasWidth, cfg.Window.CanvasHeight), "theme", d.surface.Theme().Name)
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowTitle("teeforge")
	ebiten.SetVsyncEnabled(true)

	if err := ebiten.RunGame(d); err != nil {
		return err
	}
	return ctx.Err()
}

func newDesigner(ctx context.Context, cfg config.Config) (*Designer, error) {
	logger := loggerFromContext(ctx)

	tmpl := garment.Default()
	if cfg.GarmentTemplate != "" {
		t, err := garment.LoadShapefile(cfg.GarmentTemplate)
		if err != nil {
			return nil, err
		}
		tmpl = t
		logger.Info("garment loaded", "template", tmpl.Name, "points", len(tmpl.Outline), "holes", len(tmpl.Holes))
	}

	ctrl, err := ui.NewController(placement.NewStore(), cfg.GridSize, ui.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	canvas := proj.Dimensions{
		Width:  float64(cfg.Window.CanvasWidth),
		Height: float64(cfg.Window.CanvasHeight),
	}
	surf, err := surface.New(ctrl, canvas, tmpl, cfg.Fabric(), cfg.Ink())
	if err != nil {
		return nil, fmt.Errorf("garment %s: %w", tmpl.Name, err)
	}
	surf.SetTheme(cfg.Theme)

	d := &Designer{
		ctx:     ctx,
		logger:  logger,
		ctrl:    ctrl,
		surface: surf,
		wearer:  cfg.Measurements,
		preview: surf.NewPreview(proj.Dimensions{
			Width:  previewWidth,
			Height: previewWidth * canvas.Height / canvas.Width,
		}),
	}
	d.tracker = ui.NewTracker(ctrl)
	d.toolbar = ui.NewToolbar(0, 0, d.tracker, d.toggleEditing)
	surf.SetToolbar(d.toolbar)

	if cfg.Image != "" {
		im, err := content.LoadImage(cfg.Image)
		if err != nil {
			return nil, err
		}
		d.setImage(im)
	}
	if cfg.Text != "" {
		if err := content.ValidateText(cfg.Text); err != nil {
			return nil, fmt.Errorf("text: %w", err)
		}
		d.setText(cfg.Text)
	}
	return d, nil
}

func (d *Designer) setImage(im *content.Image) {
	d.surface.SetImage(im)
	if im == nil {
		d.imageName = ""
		d.ctrl.SetContent(placement.Image, false)
		d.logger.Info("image removed")
		return
	}
	d.imageName = im.Name
	d.ctrl.SetImageAspect(im.Aspect())
	d.ctrl.SetContent(placement.Image, true)
	b := im.Img.Bounds()
	d.logger.Info("image loaded", "name", im.Name, "format", im.Format, "bytes", im.Size, "size", fmt.Sprintf("%dx%d", b.Dx(), b.Dy()))
}

func (d *Designer) setText(s string) {
	d.text = s
	d.surface.SetText(s)
	d.ctrl.SetContent(placement.Text, content.Present(s))
}

// toggleEditing starts or finishes keyboard editing of the print text.
func (d *Designer) toggleEditing() {
	if d.editor != nil {
		d.editor = nil
		d.logger.Debug("text editing finished", "lines", content.LineCount(d.text))
		return
	}
	d.editor = content.NewEditor(d.text)
	d.status = ""
}

func (d *Designer) Update() error {
	if d.ctx.Err() != nil {
		return ebiten.Termination
	}

	if d.editor != nil {
		d.handleTextInput()
	} else {
		d.handleKeys()
	}
	d.handleDroppedFiles()

	d.toolbar.Sync(d.ctrl, d.tracker)
	d.handleMouse()
	d.handleTouchEvents()
	d.toolbar.Sync(d.ctrl, d.tracker)
	return nil
}

func (d *Designer) handleKeys() {
	ctrlDown := ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyMeta)

	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		d.debugMode = !d.debugMode
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) && inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		d.surface.NextTheme()
		d.preview.NextTheme()
		d.logger.Debug("theme", "name", d.surface.Theme().Name)
	}

	// Handle keyboard zooming
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) || // = key
		inpututil.IsKeyJustPressed(ebiten.KeyNumpadAdd) { // numpad +
		d.tracker.Lost()
		d.surface.ZoomIn()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) || // - key
		inpututil.IsKeyJustPressed(ebiten.KeyNumpadSubtract) { // numpad -
		d.tracker.Lost()
		d.surface.ZoomOut()
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyBracketLeft) {
		d.tracker.Turn(-turnStep)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBracketRight) {
		d.tracker.Turn(turnStep)
	}

	if ctrlDown && inpututil.IsKeyJustPressed(ebiten.KeyE) {
		d.export()
	}
	if ctrlDown && inpututil.IsKeyJustPressed(ebiten.KeyR) {
		d.tracker.Lost()
		d.ctrl.Reset()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		d.ctrl.Deselect()
	}
	if !ctrlDown && inpututil.IsKeyJustPressed(ebiten.KeyT) {
		d.toggleEditing()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDelete) {
		d.removeActive()
	}
}

// export logs the design with the wearer's measurements.
func (d *Designer) export() {
	if d.tracker.Pressed() {
		return
	}
	design.New(d.wearer, d.text, d.imageName, d.ctrl).Log(d.logger)
	d.status = "design exported"
}

// removeActive takes the content of the active element away. Its
// placement is kept and comes back with new content.
func (d *Designer) removeActive() {
	k, ok := d.ctrl.Active()
	if !ok || d.tracker.Pressed() {
		return
	}
	switch k {
	case placement.Image:
		d.setImage(nil)
	case placement.Text:
		d.setText("")
	}
	d.ctrl.Deselect()
}

func (d *Designer) handleTextInput() {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		d.toggleEditing()
		return
	}

	changed := false
	d.runes = ebiten.AppendInputChars(d.runes[:0])
	if len(d.runes) > 0 {
		if err := d.editor.Insert(d.runes...); err != nil {
			d.status = err.Error()
		}
		changed = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadEnter) {
		if err := d.editor.Insert('\n'); err != nil {
			d.status = err.Error()
		}
		changed = true
	}
	if repeatingKeyPressed(ebiten.KeyBackspace) {
		d.editor.Backspace()
		d.status = ""
		changed = true
	}
	if changed {
		d.setText(d.editor.Text())
	}
}

// repeatingKeyPressed reports a key press with auto repeat while held.
func repeatingKeyPressed(key ebiten.Key) bool {
	const (
		delay    = 30
		interval = 3
	)
	dur := inpututil.KeyPressDuration(key)
	if dur == 1 {
		return true
	}
	return dur >= delay && (dur-delay)%interval == 0
}

func (d *Designer) handleDroppedFiles() {
	files := ebiten.DroppedFiles()
	if files == nil {
		return
	}
	entries, err := fs.ReadDir(files, ".")
	if err != nil {
		d.fail(err)
		return
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		data, err := fs.ReadFile(files, e.Name())
		if err != nil {
			d.fail(err)
			return
		}
		im, err := content.ReadImage(e.Name(), data)
		if err != nil {
			d.fail(err)
			return
		}
		d.tracker.Lost()
		d.setImage(im)
		d.status = ""
		return
	}
}

func (d *Designer) fail(err error) {
	d.status = err.Error()
	d.logger.Error("content rejected", "err", err)
}

func (d *Designer) handleMouse() {
	if d.touching {
		return
	}
	cx, cy := ebiten.CursorPosition()
	wx, wy := float64(cx), float64(cy)
	pressed := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)

	// Toolbar input goes first unless a gesture holds the pointer
	if !d.tracker.Pressed() && d.toolbar.HandleInput(wx, wy, pressed) {
		ebiten.SetCursorShape(ebiten.CursorShapePointer)
		return
	}

	x, y := d.surface.ToContainer(wx, wy)
	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		if d.surface.Contains(wx, wy) {
			d.tracker.Down(x, y)
		} else {
			d.ctrl.Deselect()
		}
	case inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft):
		d.tracker.Up()
	case pressed && d.tracker.Pressed():
		if !ebiten.IsFocused() {
			d.tracker.Lost()
			break
		}
		d.tracker.Move(x, y)
	}
	d.updateCursor(x, y)
}

func (d *Designer) updateCursor(x, y float64) {
	h := ui.HandleBody
	over := false
	if s := d.ctrl.State(); s.Gesture != ui.Idle {
		h, over = s.Handle, true
		if s.Gesture == ui.Rotating {
			h = ui.HandleRotate
		}
	} else if hit, ok := d.ctrl.HitTest(x, y); ok {
		h, over = hit.Handle, true
	}
	if !over {
		ebiten.SetCursorShape(ebiten.CursorShapeDefault)
		return
	}

	switch h {
	case ui.HandleLeft, ui.HandleRight:
		ebiten.SetCursorShape(ebiten.CursorShapeEWResize)
	case ui.HandleTop, ui.HandleBottom:
		ebiten.SetCursorShape(ebiten.CursorShapeNSResize)
	case ui.HandleTopLeft, ui.HandleBottomRight:
		ebiten.SetCursorShape(ebiten.CursorShapeNWSEResize)
	case ui.HandleTopRight, ui.HandleBottomLeft:
		ebiten.SetCursorShape(ebiten.CursorShapeNESWResize)
	case ui.HandleRotate:
		ebiten.SetCursorShape(ebiten.CursorShapeCrosshair)
	default:
		ebiten.SetCursorShape(ebiten.CursorShapeMove)
	}
}

func (d *Designer) Draw(screen *ebiten.Image) {
	th := d.surface.Theme()
	screen.Fill(th.Background)

	d.surface.Draw(screen)
	d.preview.Draw(screen)
	ebitenutil.DebugPrintAt(screen, "Preview", int(d.preview.X), int(d.preview.Y)-16)
	ebitenutil.DebugPrintAt(screen, "Wearer: "+d.wearer.String(), int(d.preview.X), int(d.preview.Y+d.preview.Dimensions().Height*d.preview.Zoom)+8)

	bounds := screen.Bounds()
	help := "drag to move, edges to resize, knob to rotate   [ ] turn   T text   Del remove   Ctrl+E export   Ctrl+R reset   Alt+Q theme"
	if d.editor != nil {
		help = fmt.Sprintf("editing text, %d more line(s), Esc to finish", d.editor.Remaining())
	}
	ebitenutil.DebugPrintAt(screen, help, 8, bounds.Dy()-20)
	if d.status != "" {
		ebitenutil.DebugPrintAt(screen, d.status, 8, bounds.Dy()-36)
	}

	// Draw debug overlay if enabled
	if d.debugMode {
		s := d.ctrl.State()
		active := "none"
		if k, ok := d.ctrl.Active(); ok {
			active = k.String()
		}
		dims := d.surface.Dimensions()
		debugText := fmt.Sprintf("State: %s %s\nActive: %s\nContainer: %.0fx%.0f\nZoom: %.1f\nMode: %s\nWearer: %s\nTPS: %.0f",
			s.Gesture, s.Handle, active, dims.Width, dims.Height, d.surface.Zoom, d.tracker.Mode, d.wearer, ebiten.ActualTPS())
		ebitenutil.DebugPrint(screen, debugText)
	}
}

func (d *Designer) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h := float64(outsideWidth), float64(outsideHeight)
	// leave room for the help line
	d.surface.Layout(0, 0, w-sidebarWidth, h-40)
	d.preview.Layout(w-sidebarWidth+sidebarPad, 2*sidebarPad, previewWidth, h/2)
	return outsideWidth, outsideHeight
}
