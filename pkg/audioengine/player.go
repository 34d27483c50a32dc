/*
 * Copyright (c) 2026 Audix Project.
 * This software is part of the Audix audio toolkit.
 * This code is provided "as is", without warranty of any kind.
 */

package audioengine

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"audix/internal/decode"
)

// openSession bisa ditukar di test dengan sesi decode sintetis.
var openSession = func(path string) (DecodeSession, error) {
	return decode.Open(path)
}

// Player adalah facade yang dipegang pemanggil. Aman dipanggil dari
// thread UI/command mana pun; kedua goroutine worker hanya berbagi
// PlaybackState dan SampleRing, tidak pernah disentuh langsung dari
// luar.
type Player struct {
	mu      sync.Mutex
	state   *PlaybackState
	workers *sync.WaitGroup
	log     *logrus.Entry
}

// NewPlayer membuat player kosong. Tidak ada perangkat atau thread yang
// dibuka sampai Play dipanggil.
func NewPlayer() *Player {
	return &Player{
		log: logrus.WithField("component", "audioengine"),
	}
}

// Play menghentikan sesi sebelumnya (sinkron), mem-probe file, lalu
// melepas goroutine decoder dan output. Probe dilakukan SEBELUM kedua
// goroutine jalan supaya tidak ada race metadata default/basi saat
// startup. Kembali begitu goroutine terlepas, bukan saat audio mulai
// terdengar. Gagal buka/probe dilaporkan sinkron dan tidak ada
// goroutine yang dibuat.
func (p *Player) Play(path string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()

	dec, err := openSession(path)
	if err != nil {
		return fmt.Errorf("play %s: %w", path, err)
	}
	if dec.SampleRate() <= 0 || dec.Channels() <= 0 {
		dec.Close()
		return fmt.Errorf("play %s: probe returned no usable format", path)
	}

	st := newPlaybackState(dec.SampleRate(), dec.Channels(), dec.TotalFrames())
	st.setPlaying(true)

	// Ring menampung ±2 detik audio pada rate/channel asli file:
	// jauh di atas satu batch callback perangkat, jauh di bawah
	// ukuran file (file boleh lebih besar dari memori).
	ring := NewSampleRing(dec.SampleRate() * dec.Channels() * 2)

	wg := &sync.WaitGroup{}
	wg.Add(2)
	go func() {
		defer wg.Done()
		decodeLoop(st, ring, dec, p.log)
	}()
	go func() {
		defer wg.Done()
		outputLoop(st, ring, p.log)
	}()

	p.state = st
	p.workers = wg
	return nil
}

// Pause menahan emisi audio; decode boleh tetap jalan mengisi ring.
func (p *Player) Pause() {
	if st := p.snapshotState(); st != nil {
		st.setPlaying(false)
	}
}

// Resume melanjutkan emisi audio.
func (p *Player) Resume() {
	if st := p.snapshotState(); st != nil {
		st.setPlaying(true)
	}
}

// Toggle membalik play/pause.
func (p *Player) Toggle() {
	if st := p.snapshotState(); st != nil {
		st.togglePlaying()
	}
}

// Seek meminta lompatan ke detik tertentu. Target dikonversi ke frame
// dengan sample rate file; dipanggil lagi sebelum seek sebelumnya
// dilayani berarti penulis terakhir menang.
func (p *Player) Seek(seconds float64) {
	st := p.snapshotState()
	if st == nil || st.SampleRate() <= 0 {
		return
	}
	frame := int(seconds * float64(st.SampleRate()))
	if frame < 0 {
		frame = 0
	}
	if total := st.TotalFrames(); total > 0 && frame > total {
		frame = total
	}
	st.requestSeek(frame)
}

// Stop menyalakan latch shouldStop, menunggu kedua goroutine join,
// lalu mereset posisi ke 0. Idempotent: aman dipanggil saat tidak ada
// apa pun yang diputar.
func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()
}

func (p *Player) stopLocked() {
	if p.workers == nil {
		return
	}
	p.state.requestStop()
	p.state.setPlaying(false)
	p.workers.Wait()
	p.state.setCurrentFrame(0)
	p.workers = nil
}

// State mengembalikan (playing, posisi detik, durasi detik). Nol kalau
// belum ada file yang dimuat.
func (p *Player) State() (bool, float64, float64) {
	st := p.snapshotState()
	if st == nil {
		return false, 0, 0
	}
	return st.Snapshot()
}

func (p *Player) snapshotState() *PlaybackState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}
