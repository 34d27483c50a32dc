package codec

import (
	"testing"
)

func TestOpusFrames_Roundtrip(t *testing.T) {
	t.Parallel()

	src := sineAudio(48000, 1, 48000, 440) // 1 detik = 50 frame 20ms
	frames, err := EncodeOpusFrames(src)
	if err != nil {
		t.Fatalf("EncodeOpusFrames() error: %v", err)
	}
	if len(frames) != 50 {
		t.Fatalf("len(frames) = %d, want 50", len(frames))
	}
	for i, f := range frames {
		if len(f) == 0 {
			t.Fatalf("frame %d is empty", i)
		}
	}

	out, err := DecodeOpusFrames(frames, 1)
	if err != nil {
		t.Fatalf("DecodeOpusFrames() error: %v", err)
	}
	if out.SampleRate != 48000 || out.Channels != 1 {
		t.Fatalf("decoded format = %d Hz %dch, want 48000 Hz 1ch", out.SampleRate, out.Channels)
	}
	if got := len(out.Samples); got != 48000 {
		t.Fatalf("decoded %d samples, want 48000", got)
	}
}

func TestOpusFrames_PadsFinalFrame(t *testing.T) {
	t.Parallel()

	// 1.5 frame: yang terakhir dipad sampai 20ms penuh
	src := sineAudio(48000, 1, 1440, 440)
	frames, err := EncodeOpusFrames(src)
	if err != nil {
		t.Fatalf("EncodeOpusFrames() error: %v", err)
	}
	if len(frames) != 2 {
		t.Fatalf("len(frames) = %d, want 2", len(frames))
	}

	out, err := DecodeOpusFrames(frames, 1)
	if err != nil {
		t.Fatalf("DecodeOpusFrames() error: %v", err)
	}
	if got := len(out.Samples); got != 1920 {
		t.Fatalf("decoded %d samples, want 1920 (2 padded frames)", got)
	}
}

func TestOpusFrames_RejectsBadInput(t *testing.T) {
	t.Parallel()

	wrongRate := sineAudio(44100, 1, 4410, 440)
	if _, err := EncodeOpusFrames(wrongRate); err == nil {
		t.Error("44.1 kHz input accepted, opus path requires 48 kHz")
	}

	surround := &AudioData{Samples: make([]float32, 4800), SampleRate: 48000, Channels: 5}
	if _, err := EncodeOpusFrames(surround); err == nil {
		t.Error("5-channel input accepted")
	}

	if _, err := DecodeOpusFrames(nil, 3); err == nil {
		t.Error("3-channel decode accepted")
	}
}

func TestOpusFrames_Stereo(t *testing.T) {
	t.Parallel()

	src := sineAudio(48000, 2, 9600, 440)
	frames, err := EncodeOpusFrames(src)
	if err != nil {
		t.Fatalf("EncodeOpusFrames() error: %v", err)
	}
	if len(frames) != 10 {
		t.Fatalf("len(frames) = %d, want 10", len(frames))
	}

	out, err := DecodeOpusFrames(frames, 2)
	if err != nil {
		t.Fatalf("DecodeOpusFrames() error: %v", err)
	}
	if got := len(out.Samples); got != 9600*2 {
		t.Fatalf("decoded %d samples, want %d", got, 9600*2)
	}
}
