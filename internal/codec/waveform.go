package codec

import (
	"fmt"
	"io"

	"audix/internal/decode"
)

// WaveformPeaks adalah ringkasan amplitudo min/max per segmen untuk
// menggambar waveform di UI. Jauh lebih kecil dari sampel mentah:
// audio 4 jam cukup beberapa ribu titik.
type WaveformPeaks struct {
	Mins            []float32 `json:"mins"`
	Maxs            []float32 `json:"maxs"`
	NumPeaks        int       `json:"num_peaks"`
	SampleRate      int       `json:"sample_rate"`
	Channels        int       `json:"channels"`
	DurationSeconds float64   `json:"duration_seconds"`
}

// DefaultNumPeaks dipakai kalau pemanggil tidak menentukan resolusi.
const DefaultNumPeaks = 2000

// ExtractPeaks membaca file sekali jalan secara streaming dan
// menghitung pasangan peak min/max untuk numPeaks segmen. Memori yang
// dipakai tidak tergantung panjang file.
func ExtractPeaks(path string, numPeaks int) (*WaveformPeaks, error) {
	if numPeaks <= 0 {
		numPeaks = DefaultNumPeaks
	}

	sess, err := decode.Open(path)
	if err != nil {
		return nil, err
	}
	defer sess.Close()

	total := sess.TotalFrames()
	if total <= 0 {
		return nil, fmt.Errorf("codec: cannot extract peaks, stream length unknown for %s", path)
	}

	channels := sess.Channels()
	framesPerPeak := total / numPeaks
	if framesPerPeak < 1 {
		framesPerPeak = 1
	}

	peaks := &WaveformPeaks{
		Mins:       make([]float32, 0, numPeaks),
		Maxs:       make([]float32, 0, numPeaks),
		SampleRate: sess.SampleRate(),
		Channels:   channels,
	}

	var (
		curMin, curMax float32 = 1, -1
		framesInBucket int
		totalFrames    int
	)
	flush := func() {
		if framesInBucket == 0 {
			return
		}
		peaks.Mins = append(peaks.Mins, curMin)
		peaks.Maxs = append(peaks.Maxs, curMax)
		curMin, curMax = 1, -1
		framesInBucket = 0
	}

	for {
		block, err := sess.NextBlock()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		// scan per frame: semua channel dilipat ke satu pasang peak
		for i := 0; i+channels <= len(block); i += channels {
			for c := 0; c < channels; c++ {
				s := block[i+c]
				if s < curMin {
					curMin = s
				}
				if s > curMax {
					curMax = s
				}
			}
			framesInBucket++
			totalFrames++
			if framesInBucket >= framesPerPeak && len(peaks.Mins) < numPeaks-1 {
				flush()
			}
		}
	}
	flush()

	peaks.NumPeaks = len(peaks.Mins)
	if peaks.SampleRate > 0 {
		peaks.DurationSeconds = float64(totalFrames) / float64(peaks.SampleRate)
	}
	return peaks, nil
}
