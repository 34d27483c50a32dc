package codec

import (
	"fmt"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// EncodeWAV menulis AudioData sebagai WAV PCM 16-bit.
func EncodeWAV(data *AudioData, outputPath string) error {
	if data.SampleRate <= 0 || data.Channels <= 0 {
		return fmt.Errorf("codec: cannot encode wav without format (rate=%d ch=%d)",
			data.SampleRate, data.Channels)
	}

	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("codec: create %s: %w", outputPath, err)
	}
	defer f.Close()

	enc := wav.NewEncoder(f, data.SampleRate, 16, data.Channels, 1)

	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: data.Channels,
			SampleRate:  data.SampleRate,
		},
		Data:           make([]int, len(data.Samples)),
		SourceBitDepth: 16,
	}

	// Konversi float32 [-1,1] ke int16 dengan clipping
	for i, s := range data.Samples {
		v := s * 32767
		if v > 32767 {
			v = 32767
		} else if v < -32768 {
			v = -32768
		}
		buf.Data[i] = int(int16(v))
	}

	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("codec: write wav: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("codec: finalize wav: %w", err)
	}
	return nil
}
