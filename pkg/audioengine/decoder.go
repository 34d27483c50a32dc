/*
 * Copyright (c) 2026 Audix Project.
 * This software is part of the Audix audio toolkit.
 * This code is provided "as is", without warranty of any kind.
 */

package audioengine

import (
	"io"
	"time"

	"github.com/sirupsen/logrus"
)

// DecodeSession adalah kolaborator decode yang dikonsumsi engine:
// probe file, hasilkan blok PCM float32 interleaved, dan seek kasar
// ke frame target. Implementasi nyata ada di internal/decode.
type DecodeSession interface {
	SampleRate() int
	Channels() int
	TotalFrames() int

	// NextBlock mengembalikan blok sampel berikutnya. io.EOF menandai
	// akhir stream (bukan error). Slice hanya valid sampai panggilan
	// berikutnya.
	NextBlock() ([]float32, error)

	// SeekFrame meminta seek best-effort; codec boleh mendarat di
	// boundary terdekat. Mengembalikan frame yang benar-benar didarati.
	SeekFrame(frame int) (int, error)

	// Reset membuang state internal decoder supaya blok berikutnya
	// mulai bersih setelah seek.
	Reset()

	Close() error
}

// Interval tidur saat ring penuh. Pendek supaya stop() kembali dalam
// hitungan puluhan milidetik.
const pushRetryInterval = 5 * time.Millisecond

// decodeLoop adalah goroutine produser: tarik blok dari DecodeSession,
// dorong ke ring. Satu-satunya penulis ring. Urutan per iterasi
// mengikuti protokol: stop dulu, lalu seek, baru decode.
func decodeLoop(st *PlaybackState, ring *SampleRing, dec DecodeSession, log *logrus.Entry) {
	defer dec.Close()

	for {
		if st.stopRequested() {
			return
		}

		if st.seekRequested() {
			serviceSeek(st, dec, log)
			continue
		}

		block, err := dec.NextBlock()
		if err == io.EOF {
			if drain(st, ring) {
				// seek datang saat drain: kembali streaming
				continue
			}
			st.setPlaying(false)
			return
		}
		if err != nil {
			// blok korup: lewati, audionya hilang diam-diam
			log.WithError(err).Warn("decode block failed, skipping")
			continue
		}

		// Dorong sampai habis. Push nol berarti penuh: tidur sebentar
		// dan cek ulang stop/seek supaya permintaan tidak tertahan
		// oleh buffer penuh.
		for len(block) > 0 {
			n := ring.Push(block)
			block = block[n:]
			if len(block) == 0 {
				break
			}
			if st.stopRequested() {
				return
			}
			if st.seekRequested() {
				// sisa blok basi, tidak perlu didorong
				break
			}
			time.Sleep(pushRetryInterval)
		}
	}
}

// serviceSeek menjalankan seek terhadap sumber. Sukses: tulis frame
// yang didarati ke currentFrame, naikkan flag flush supaya konsumer
// membuang audio basi, reset decoder, baru clear pending. Gagal:
// log dan lanjut decode dari posisi lama (non-fatal).
func serviceSeek(st *PlaybackState, dec DecodeSession, log *logrus.Entry) {
	target := st.seekFrame()
	landed, err := dec.SeekFrame(target)
	if err != nil {
		log.WithError(err).WithField("frame", target).Warn("seek failed, keeping position")
		st.clearSeek()
		return
	}
	dec.Reset()
	st.setCurrentFrame(landed)
	st.requestFlush()
	st.clearSeek()
}

// drain menunggu ring kosong setelah akhir stream supaya ekor audio
// yang masih terbuffer sempat terdengar. Mengembalikan true kalau
// sebuah seek memotong drain (sesi lanjut streaming lagi).
func drain(st *PlaybackState, ring *SampleRing) bool {
	for ring.Len() > 0 {
		if st.stopRequested() {
			return false
		}
		if st.seekRequested() {
			return true
		}
		time.Sleep(pushRetryInterval)
	}
	return st.seekRequested()
}
