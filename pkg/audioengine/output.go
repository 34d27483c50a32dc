/*
 * Copyright (c) 2026 Audix Project.
 * This software is part of the Audix audio toolkit.
 * This code is provided "as is", without warranty of any kind.
 */

package audioengine

import (
	"fmt"
	"io"

	"github.com/hajimehoshi/oto"
	"github.com/sirupsen/logrus"
)

// outputDevice adalah stream perangkat keluaran. Write memblokir saat
// buffer perangkat penuh; blocking itulah yang memberi irama pada loop
// output (satu chunk per siklus callback perangkat).
type outputDevice interface {
	io.Writer
	Close() error
}

// openOutputDevice bisa ditukar di test dengan perangkat palsu.
// Produksi memakai oto: context PCM int16 little-endian (bitDepth 2
// byte) dengan satu player di atasnya.
var openOutputDevice = func(sampleRate, channels, bufferBytes int) (outputDevice, error) {
	ctx, err := oto.NewContext(sampleRate, channels, 2, bufferBytes)
	if err != nil {
		return nil, err
	}
	return &otoDevice{player: ctx.NewPlayer(), ctx: ctx}, nil
}

// otoDevice mengikat player oto ke context-nya. oto hanya mengizinkan
// satu context hidup per proses, jadi context ikut ditutup di akhir sesi
// supaya sesi berikutnya bisa membuka rate/channel berbeda.
type otoDevice struct {
	player *oto.Player
	ctx    *oto.Context
}

func (d *otoDevice) Write(p []byte) (int, error) { return d.player.Write(p) }

func (d *otoDevice) Close() error {
	err := d.player.Close()
	if cerr := d.ctx.Close(); err == nil {
		err = cerr
	}
	return err
}

// fallbackRates dicoba berurutan kalau perangkat menolak rate asli
// file. Pakai yang pertama diterima; mismatch membuat speed/pitch
// bergeser dan cukup diberi warning.
var fallbackRates = []int{48000, 44100, 96000, 22050}

// openDeviceWithFallback mencoba rate asli dulu, lalu daftar fallback.
// Setiap kandidat dites dengan benar-benar membuka stream perangkat.
func openDeviceWithFallback(nativeRate, channels, bufferBytes int, log *logrus.Entry) (outputDevice, int, error) {
	dev, err := openOutputDevice(nativeRate, channels, bufferBytes)
	if err == nil {
		return dev, nativeRate, nil
	}
	log.WithError(err).WithField("rate", nativeRate).Warn("device rejected native rate")

	for _, rate := range fallbackRates {
		if rate == nativeRate {
			continue
		}
		dev, err = openOutputDevice(rate, channels, bufferBytes)
		if err == nil {
			log.Warnf("falling back to %d Hz, playback speed/pitch will be off", rate)
			return dev, rate, nil
		}
	}
	return nil, 0, fmt.Errorf("no supported output rate for %d Hz %dch: %w", nativeRate, channels, err)
}

// chunkFrames menentukan ukuran satu chunk output (~25 ms) sehingga
// stop() terdeteksi dalam hitungan puluhan milidetik.
func chunkFrames(rate int) int {
	n := rate / 40
	if n < 64 {
		n = 64
	}
	return n
}

// outputLoop adalah goroutine konsumer: buka perangkat, lalu tiap
// siklus isi satu chunk dan tulis. Pengisian chunk bebas alokasi dan
// tidak pernah blocking; hanya Write perangkat yang menunggu.
func outputLoop(st *PlaybackState, ring *SampleRing, log *logrus.Entry) {
	channels := st.Channels()
	frames := chunkFrames(st.SampleRate())
	chunk := frames * channels
	bufferBytes := chunk * 2 * 2 // dua chunk PCM int16 di buffer perangkat

	dev, devRate, err := openDeviceWithFallback(st.SampleRate(), channels, bufferBytes, log)
	if err != nil {
		// Fatal untuk sesi; dilaporkan lewat log karena tidak ada
		// jalur sinkron kembali ke pemanggil setelah thread jalan.
		// Latch stop ikut dinyalakan: tanpa konsumer, decoder akan
		// tertahan selamanya di ring penuh atau drain.
		log.WithError(err).Error("output device unavailable, aborting session")
		st.requestStop()
		st.setPlaying(false)
		return
	}
	defer dev.Close()
	log.WithField("rate", devRate).Debug("output device ready")

	samples := make([]float32, chunk)
	pcm := make([]byte, chunk*2)
	var consumed uint64 // total sampel yang benar-benar dikonsumsi

	for !st.stopRequested() {
		fillChunk(st, ring, samples, &consumed)
		encodePCM16(samples, pcm)
		if _, err := dev.Write(pcm); err != nil {
			// perangkat cabut dsb: sesi diakhiri, tanpa re-acquire
			// otomatis; latch stop membebaskan decoder
			log.WithError(err).Error("output stream error")
			st.requestStop()
			st.setPlaying(false)
			return
		}
	}
}

// fillChunk mengisi satu buffer output. Urutan cek: pause, seek
// in-flight, flush, baru konsumsi ring. Semua jalur menulis seluruh
// buffer (silence kalau tidak ada data) dan selesai dalam waktu
// terbatas.
//
// Flag seek dibaca SEBELUM flag flush. Decoder menaikkan flush sebelum
// menurunkan seek, jadi begitu pembacaan seek di sini mendapat false,
// pembacaan flush sesudahnya pasti melihat true; audio pra-seek tidak
// pernah lolos satu chunk pun.
func fillChunk(st *PlaybackState, ring *SampleRing, samples []float32, consumed *uint64) {
	channels := uint64(st.Channels())

	if !st.Playing() {
		silence(samples)
		return
	}

	if st.seekRequested() {
		// seek belum dilayani decoder: jangan konsumsi buffer
		silence(samples)
		return
	}

	if st.flushRequested() {
		// buang semua audio pra-seek lalu luruskan counter ke frame
		// hasil seek; siklus ini tetap silence
		ring.Skip(ring.Len())
		*consumed = uint64(st.CurrentFrame()) * channels
		st.clearFlush()
		silence(samples)
		return
	}

	n := ring.Pop(samples)
	silence(samples[n:]) // underrun: decoder ketinggalan

	*consumed += uint64(n)
	frame := int(*consumed / channels)
	if total := st.TotalFrames(); total > 0 && frame > total {
		frame = total
	}
	st.setCurrentFrame(frame)
}

func silence(samples []float32) {
	for i := range samples {
		samples[i] = 0
	}
}

// encodePCM16 mengubah float32 [-1,1] menjadi int16 little-endian,
// dengan clipping ala ApplyQuickGain.
func encodePCM16(samples []float32, dst []byte) {
	for i, s := range samples {
		v := s * 32767
		if v > 32767 {
			v = 32767
		} else if v < -32768 {
			v = -32768
		}
		u := uint16(int16(v))
		dst[2*i] = byte(u)
		dst[2*i+1] = byte(u >> 8)
	}
}
