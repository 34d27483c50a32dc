package codec

import (
	"io"
	"path/filepath"
	"strings"

	"audix/internal/decode"
)

// DecodeFile men-decode seluruh file menjadi PCM di memori. Untuk
// transform batch (trim, export); playback live memakai jalur streaming
// di pkg/audioengine, bukan fungsi ini.
func DecodeFile(path string) (*AudioData, error) {
	sess, err := decode.Open(path)
	if err != nil {
		return nil, err
	}
	defer sess.Close()

	out := &AudioData{
		SampleRate: sess.SampleRate(),
		Channels:   sess.Channels(),
	}
	if total := sess.TotalFrames(); total > 0 {
		out.Samples = make([]float32, 0, total*out.Channels)
	}

	for {
		block, err := sess.NextBlock()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		out.Samples = append(out.Samples, block...)
	}
	return out, nil
}

// ReadInfo mengambil metadata file tanpa decode penuh; jauh lebih cepat
// dari DecodeFile untuk sekadar durasi/format.
func ReadInfo(path string) (*AudioInfo, error) {
	sess, err := decode.Open(path)
	if err != nil {
		return nil, err
	}
	defer sess.Close()

	info := &AudioInfo{
		SampleRate:  sess.SampleRate(),
		Channels:    sess.Channels(),
		TotalFrames: sess.TotalFrames(),
		Format:      strings.TrimPrefix(strings.ToUpper(filepath.Ext(path)), "."),
	}
	if info.SampleRate > 0 {
		info.DurationSeconds = float64(info.TotalFrames) / float64(info.SampleRate)
	}
	return info, nil
}
