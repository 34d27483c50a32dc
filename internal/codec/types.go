package codec

import "fmt"

// AudioData adalah hasil decode penuh di memori: sampel PCM float32
// interleaved per channel (stereo: L0,R0,L1,R1,...), rentang [-1,1].
type AudioData struct {
	Samples    []float32
	SampleRate int
	Channels   int
}

// DurationSeconds menghitung durasi total audio.
func (a *AudioData) DurationSeconds() float64 {
	if a.SampleRate <= 0 || a.Channels <= 0 {
		return 0
	}
	frames := float64(len(a.Samples)) / float64(a.Channels)
	return frames / float64(a.SampleRate)
}

// FrameCount: jumlah frame (satu sampel per channel).
func (a *AudioData) FrameCount() int {
	if a.Channels <= 0 {
		return 0
	}
	return len(a.Samples) / a.Channels
}

// AudioInfo adalah metadata file tanpa decode penuh.
type AudioInfo struct {
	DurationSeconds float64 `json:"duration_seconds"`
	SampleRate      int     `json:"sample_rate"`
	Channels        int     `json:"channels"`
	TotalFrames     int     `json:"total_frames"`
	Format          string  `json:"format"`
}

// TrimParams adalah rentang potong dalam detik, tervalidasi saat dibuat.
type TrimParams struct {
	StartSeconds float64 `json:"start_seconds"`
	EndSeconds   float64 `json:"end_seconds"`
}

// NewTrimParams memvalidasi rentang: start tidak negatif, end harus
// lebih besar dari start.
func NewTrimParams(start, end float64) (TrimParams, error) {
	if start < 0 {
		return TrimParams{}, fmt.Errorf("codec: start time cannot be negative: %v", start)
	}
	if end <= start {
		return TrimParams{}, fmt.Errorf("codec: end time (%v) must be greater than start time (%v)", end, start)
	}
	return TrimParams{StartSeconds: start, EndSeconds: end}, nil
}

// TrimDuration: panjang hasil potong dalam detik.
func (p TrimParams) TrimDuration() float64 {
	return p.EndSeconds - p.StartSeconds
}
