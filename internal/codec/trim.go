package codec

import "fmt"

// Trim memotong audio ke rentang waktu tertentu dengan aritmetika frame
// eksak (berbeda dengan live-seek yang best-effort mengikuti boundary
// codec).
func Trim(audio *AudioData, params TrimParams) (*AudioData, error) {
	duration := audio.DurationSeconds()
	if params.EndSeconds > duration {
		return nil, fmt.Errorf("codec: trim range (%vs to %vs) exceeds audio duration (%vs)",
			params.StartSeconds, params.EndSeconds, duration)
	}

	// indeks sampel = detik × rate × channel
	perSecond := float64(audio.SampleRate) * float64(audio.Channels)
	start := int(params.StartSeconds * perSecond)
	end := int(params.EndSeconds * perSecond)

	if start > len(audio.Samples) {
		start = len(audio.Samples)
	}
	if end > len(audio.Samples) {
		end = len(audio.Samples)
	}

	trimmed := make([]float32, end-start)
	copy(trimmed, audio.Samples[start:end])

	return &AudioData{
		Samples:    trimmed,
		SampleRate: audio.SampleRate,
		Channels:   audio.Channels,
	}, nil
}
