// Package media holds the capture-domain value types shared between the
// interactive session, the log pipeline, and the session journal.
package media

import "fmt"

// Resolution is a frame size in pixels.
type Resolution struct {
	Width  int
	Height int
}

func (r Resolution) String() string {
	return fmt.Sprintf("%dx%d", r.Width, r.Height)
}

// FrameRate is a rational frame rate. NTSC-family rates carry a 1001
// denominator (30000/1001 = 29.97); everything else uses Den = 1.
type FrameRate struct {
	Num int
	Den int
}

// FPS returns the rate as frames per second.
func (f FrameRate) FPS() float64 {
	if f.Den == 0 {
		return 0
	}
	return float64(f.Num) / float64(f.Den)
}

func (f FrameRate) String() string {
	if f.Den == 0 || f.Den == 1 {
		return fmt.Sprintf("%d", f.Num)
	}
	if f.Num%f.Den == 0 {
		return fmt.Sprintf("%d", f.Num/f.Den)
	}
	return fmt.Sprintf("%.2f", f.FPS())
}

// Timecode is a frame count positioned against a frame rate. It renders
// as non-drop SMPTE (HH:MM:SS:FF).
type Timecode struct {
	Frames int
	Rate   FrameRate
}

func (t Timecode) String() string {
	fps := int(t.Rate.FPS() + 0.5)
	if fps <= 0 {
		fps = 30
	}

	frames := t.Frames
	if frames < 0 {
		frames = 0
	}

	ff := frames % fps
	totalSeconds := frames / fps
	ss := totalSeconds % 60
	mm := (totalSeconds / 60) % 60
	hh := totalSeconds / 3600

	return fmt.Sprintf("%02d:%02d:%02d:%02d", hh, mm, ss, ff)
}

// Device identifies a capture source. ID and Name are safe to log;
// Driver and Formats describe the OS-level binding.
type Device struct {
	ID      string
	Name    string
	Driver  string
	Formats []Profile
}

// Profile is the active capture configuration for a session.
type Profile struct {
	Resolution Resolution
	Rate       FrameRate
}

func (p Profile) String() string {
	return fmt.Sprintf("%s@%s", p.Resolution, p.Rate)
}

// DefaultProfile is the capture profile used when no override is configured.
func DefaultProfile() Profile {
	return Profile{
		Resolution: Resolution{Width: 1920, Height: 1080},
		Rate:       FrameRate{Num: 30, Den: 1},
	}
}
