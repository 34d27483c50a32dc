/*
 * Copyright (c) 2026 Audix Project.
 * This software is part of the Audix audio toolkit.
 * This code is provided "as is", without warranty of any kind.
 */

package audioengine

import "sync/atomic"

// PlaybackState adalah blok kontrol bersama untuk satu sesi playback.
// Semua field diakses lewat atomic, tanpa mutex, supaya callback
// real-time tidak pernah menunggu lock (bebas priority inversion).
//
// Penulis per field:
//   - facade        : isPlaying, shouldStop, seekTarget+seekPending
//   - decoder       : flushPending (set), seekPending (clear),
//     isPlaying (clear saat stream habis), currentFrame (saat seek)
//   - output        : currentFrame, flushPending (clear)
//
// sampleRate, channels dan totalFrames diisi sekali sebelum kedua
// goroutine jalan dan tidak pernah berubah setelahnya.
type PlaybackState struct {
	isPlaying    atomic.Bool
	shouldStop   atomic.Bool
	seekPending  atomic.Bool
	flushPending atomic.Bool
	seekTarget   atomic.Int64
	currentFrame atomic.Int64

	sampleRate  int
	channels    int
	totalFrames int
}

func newPlaybackState(sampleRate, channels, totalFrames int) *PlaybackState {
	return &PlaybackState{
		sampleRate:  sampleRate,
		channels:    channels,
		totalFrames: totalFrames,
	}
}

func (s *PlaybackState) SampleRate() int  { return s.sampleRate }
func (s *PlaybackState) Channels() int    { return s.channels }
func (s *PlaybackState) TotalFrames() int { return s.totalFrames }

func (s *PlaybackState) Playing() bool         { return s.isPlaying.Load() }
func (s *PlaybackState) setPlaying(v bool)     { s.isPlaying.Store(v) }
func (s *PlaybackState) togglePlaying()        { s.isPlaying.Store(!s.isPlaying.Load()) }
func (s *PlaybackState) stopRequested() bool   { return s.shouldStop.Load() }
func (s *PlaybackState) requestStop()          { s.shouldStop.Store(true) } // one-way latch
func (s *PlaybackState) flushRequested() bool  { return s.flushPending.Load() }
func (s *PlaybackState) requestFlush()         { s.flushPending.Store(true) }
func (s *PlaybackState) clearFlush()           { s.flushPending.Store(false) }
func (s *PlaybackState) CurrentFrame() int     { return int(s.currentFrame.Load()) }
func (s *PlaybackState) setCurrentFrame(f int) { s.currentFrame.Store(int64(f)) }

// requestSeek mencatat satu permintaan seek. Penulis terakhir menang,
// tidak ada antrian: target ditulis dulu baru flag dinaikkan supaya
// decoder tidak membaca target basi.
func (s *PlaybackState) requestSeek(frame int) {
	s.seekTarget.Store(int64(frame))
	s.seekPending.Store(true)
}

func (s *PlaybackState) seekRequested() bool { return s.seekPending.Load() }
func (s *PlaybackState) seekFrame() int      { return int(s.seekTarget.Load()) }
func (s *PlaybackState) clearSeek()          { s.seekPending.Store(false) }

// Snapshot mengembalikan (playing, posisi detik, durasi detik).
// Nilai dibaca best-effort; bukan transaksi multi-field.
func (s *PlaybackState) Snapshot() (bool, float64, float64) {
	playing := s.isPlaying.Load()
	if s.sampleRate <= 0 {
		return playing, 0, 0
	}
	cur := float64(s.currentFrame.Load()) / float64(s.sampleRate)
	dur := float64(s.totalFrames) / float64(s.sampleRate)
	return playing, cur, dur
}
