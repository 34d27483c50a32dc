package codec

import (
	"fmt"

	"github.com/hraban/opus"
)

// Jalur preview terkompresi: AudioData bolak-balik ke frame Opus mentah
// 20ms. Opus hanya menerima rate 48kHz untuk jalur ini; pemanggil
// bertanggung jawab menyediakan data pada rate itu.

const opusRate = 48000

// EncodeOpusFrames membagi PCM menjadi frame-frame Opus 20ms.
func EncodeOpusFrames(data *AudioData) ([][]byte, error) {
	if data.SampleRate != opusRate {
		return nil, fmt.Errorf("codec: opus export requires %d Hz input, got %d", opusRate, data.SampleRate)
	}
	if data.Channels != 1 && data.Channels != 2 {
		return nil, fmt.Errorf("codec: opus export supports 1 or 2 channels, got %d", data.Channels)
	}

	enc, err := opus.NewEncoder(opusRate, data.Channels, opus.AppAudio)
	if err != nil {
		return nil, err
	}

	frameSize := opusRate / 50 // 20ms
	sampleSize := frameSize * data.Channels
	var frames [][]byte

	// Pre-alokasi buffer untuk satu frame agar tidak alokasi di dalam loop
	tmpData := make([]byte, 1500)
	padded := make([]float32, sampleSize)

	for i := 0; i < len(data.Samples); i += sampleSize {
		end := i + sampleSize
		var chunk []float32
		if end > len(data.Samples) {
			// frame terakhir dipad silence
			for j := range padded {
				padded[j] = 0
			}
			copy(padded, data.Samples[i:])
			chunk = padded
		} else {
			chunk = data.Samples[i:end]
		}

		n, err := enc.EncodeFloat32(chunk, tmpData)
		if err != nil {
			return nil, err
		}

		frame := make([]byte, n)
		copy(frame, tmpData[:n])
		frames = append(frames, frame)
	}
	return frames, nil
}

// DecodeOpusFrames merubah payload frames kembali menjadi AudioData.
func DecodeOpusFrames(frames [][]byte, channels int) (*AudioData, error) {
	if channels != 1 && channels != 2 {
		return nil, fmt.Errorf("codec: opus decode supports 1 or 2 channels, got %d", channels)
	}
	dec, err := opus.NewDecoder(opusRate, channels)
	if err != nil {
		return nil, err
	}

	out := &AudioData{SampleRate: opusRate, Channels: channels}
	frameSize := opusRate / 50

	buf := make([]float32, frameSize*channels)
	for _, frame := range frames {
		n, err := dec.DecodeFloat32(frame, buf)
		if err != nil {
			return nil, err
		}
		out.Samples = append(out.Samples, buf[:n*channels]...)
	}
	return out, nil
}
