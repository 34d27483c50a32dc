/*
 * Copyright (c) 2026 Audix Project.
 * This software is part of the Audix audio toolkit.
 * This code is provided "as is", without warranty of any kind.
 */

// Package decode membungkus probing file + codec + seek menjadi satu
// sesi decode buram: buka path, laporkan rate/channel/total frame,
// hasilkan blok sampel float32 interleaved, dan layani seek ke frame
// target.
package decode

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/faiface/beep"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/vorbis"
	"github.com/faiface/beep/wav"
)

var (
	// ErrUnknownFormat: ekstensi file tidak dikenali probe.
	ErrUnknownFormat = errors.New("decode: unknown audio format")
	// ErrNoSampleRate: container terbaca tapi tanpa sample rate valid.
	ErrNoSampleRate = errors.New("decode: no sample rate in stream")
	// ErrTooManyChannels: layout selain mono/stereo tidak didukung jalur
	// interleave.
	ErrTooManyChannels = errors.New("decode: only mono and stereo are supported")
)

// blockFrames adalah ukuran satu blok decode (frame per NextBlock).
const blockFrames = 1024

// Session adalah satu sesi decode terhadap satu file.
type Session struct {
	file     *os.File
	streamer beep.StreamSeekCloser
	format   beep.Format

	scratch [][2]float64
	block   []float32
}

// Open mem-probe file lewat ekstensinya dan menyiapkan decoder codec
// yang cocok. Gagal buka atau format tak dikenal bersifat fatal bagi
// permintaan play dan dilaporkan sinkron di sini.
func Open(path string) (*Session, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("decode: open %s: %w", path, err)
	}

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".wav":
		streamer, format, err = wav.Decode(f)
	case ".flac":
		streamer, format, err = flac.Decode(f)
	case ".ogg", ".oga":
		streamer, format, err = vorbis.Decode(f)
	default:
		f.Close()
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, filepath.Ext(path))
	}
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("decode: probe %s: %w", path, err)
	}
	if format.SampleRate <= 0 {
		streamer.Close()
		f.Close()
		return nil, ErrNoSampleRate
	}
	if format.NumChannels > 2 {
		streamer.Close()
		f.Close()
		return nil, fmt.Errorf("%w: %d channels", ErrTooManyChannels, format.NumChannels)
	}

	channels := format.NumChannels
	if channels < 1 {
		channels = 1
	}
	return &Session{
		file:     f,
		streamer: streamer,
		format:   format,
		scratch:  make([][2]float64, blockFrames),
		block:    make([]float32, blockFrames*channels),
	}, nil
}

// SampleRate dalam Hz.
func (s *Session) SampleRate() int { return int(s.format.SampleRate) }

// Channels: 1 mono, 2 stereo.
func (s *Session) Channels() int {
	if s.format.NumChannels < 1 {
		return 1
	}
	return s.format.NumChannels
}

// TotalFrames melaporkan panjang stream dalam frame (0 kalau tidak
// diketahui).
func (s *Session) TotalFrames() int {
	if n := s.streamer.Len(); n > 0 {
		return n
	}
	return 0
}

// NextBlock men-decode blok berikutnya sebagai sampel float32
// interleaved pada channel asli file. io.EOF menandai akhir stream.
// Slice hasil hanya valid sampai panggilan berikutnya.
func (s *Session) NextBlock() ([]float32, error) {
	n, ok := s.streamer.Stream(s.scratch)
	if n == 0 {
		if !ok {
			if err := s.streamer.Err(); err != nil {
				return nil, err
			}
			return nil, io.EOF
		}
		return s.block[:0], nil
	}

	ch := s.Channels()
	out := s.block[:n*ch]
	if ch == 1 {
		for i := 0; i < n; i++ {
			out[i] = float32(s.scratch[i][0])
		}
	} else {
		for i := 0; i < n; i++ {
			out[2*i] = float32(s.scratch[i][0])
			out[2*i+1] = float32(s.scratch[i][1])
		}
	}
	return out, nil
}

// SeekFrame melakukan seek best-effort; codec boleh mendarat di
// boundary terdekat. Mengembalikan frame yang benar-benar didarati.
func (s *Session) SeekFrame(target int) (int, error) {
	if target < 0 {
		target = 0
	}
	if total := s.streamer.Len(); total > 0 && target > total {
		target = total
	}
	if err := s.streamer.Seek(target); err != nil {
		return 0, fmt.Errorf("decode: seek to frame %d: %w", target, err)
	}
	return s.streamer.Position(), nil
}

// Reset membuang isi blok scratch supaya blok pertama setelah seek
// mulai bersih.
func (s *Session) Reset() {
	s.block = s.block[:0]
	s.block = s.block[:cap(s.block)]
}

// Close melepaskan decoder dan file. Sebagian codec beep ikut menutup
// reader di bawahnya, jadi error close file kedua diabaikan.
func (s *Session) Close() error {
	err := s.streamer.Close()
	s.file.Close()
	return err
}
