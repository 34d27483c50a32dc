/*
 * Copyright (c) 2026 Audix Project.
 * This software is part of the Audix audio toolkit.
 * This code is provided "as is", without warranty of any kind.
 */

package audioengine

import "sync/atomic"

// SampleRing adalah ring buffer lock-free single-producer/single-consumer
// untuk sampel float32 interleaved. Decoder adalah satu-satunya penulis,
// sisi output satu-satunya pembaca; tidak ada pihak lain yang boleh
// menyentuhnya.
//
// Dua counter atomic yang naik terus (writePos, readPos) plus kapasitas
// pangkat dua dengan bit mask. Tanpa mutex, tanpa CAS loop. Store posisi
// dilakukan SETELAH copy data, jadi pembaca selalu melihat data yang
// sudah lengkap (sync/atomic di Go memberikan sequential consistency).
type SampleRing struct {
	// Padding memisahkan counter produser dan konsumer ke cache line
	// berbeda untuk menghindari false sharing.
	writePos atomic.Uint64
	_        [56]byte
	readPos  atomic.Uint64
	_        [56]byte

	buf  []float32
	mask uint64
}

// NewSampleRing membuat ring dengan kapasitas dibulatkan ke pangkat dua
// berikutnya. Kapasitas pangkat dua selalu kelipatan jumlah channel
// (1 atau 2), jadi wraparound tidak pernah menggeser alignment channel.
func NewSampleRing(minCap int) *SampleRing {
	if minCap <= 0 {
		panic("audioengine: ring capacity must be positive")
	}
	size := 1
	for size < minCap {
		size <<= 1
		if size <= 0 {
			panic("audioengine: ring capacity overflow")
		}
	}
	return &SampleRing{
		buf:  make([]float32, size),
		mask: uint64(size - 1),
	}
}

// Push menyalin sebanyak mungkin sampel dari src ke ring dan
// mengembalikan jumlah yang diterima. Tidak pernah blocking; hasil nol
// saat penuh adalah sinyal backpressure untuk decoder.
// Hanya boleh dipanggil dari goroutine produser.
func (r *SampleRing) Push(src []float32) int {
	w := r.writePos.Load()
	rd := r.readPos.Load()

	free := uint64(len(r.buf)) - (w - rd)
	if free == 0 {
		return 0
	}

	n := uint64(len(src))
	if n > free {
		n = free
	}

	pos := w & r.mask
	first := uint64(len(r.buf)) - pos
	if first >= n {
		copy(r.buf[pos:pos+n], src[:n])
	} else {
		copy(r.buf[pos:], src[:first])
		copy(r.buf[:n-first], src[first:n])
	}

	r.writePos.Store(w + n)
	return int(n)
}

// Pop mengisi dst dengan sampel yang tersedia, mengembalikan jumlah
// yang terisi. Tidak pernah blocking; kekurangan saat underrun menjadi
// urusan pemanggil (diisi silence). Hanya dari goroutine konsumer.
func (r *SampleRing) Pop(dst []float32) int {
	rd := r.readPos.Load()
	w := r.writePos.Load()

	avail := w - rd
	if avail == 0 {
		return 0
	}

	n := uint64(len(dst))
	if n > avail {
		n = avail
	}

	pos := rd & r.mask
	first := uint64(len(r.buf)) - pos
	if first >= n {
		copy(dst[:n], r.buf[pos:pos+n])
	} else {
		copy(dst[:first], r.buf[pos:])
		copy(dst[first:n], r.buf[:n-first])
	}

	r.readPos.Store(rd + n)
	return int(n)
}

// Skip membuang sampai n sampel tanpa menyalin, dipakai konsumer untuk
// flush sisa audio basi setelah seek. Mengembalikan jumlah yang dibuang.
func (r *SampleRing) Skip(n int) int {
	if n <= 0 {
		return 0
	}
	rd := r.readPos.Load()
	w := r.writePos.Load()

	avail := w - rd
	skip := uint64(n)
	if skip > avail {
		skip = avail
	}
	r.readPos.Store(rd + skip)
	return int(skip)
}

// Len mengembalikan jumlah sampel yang sedang terisi.
func (r *SampleRing) Len() int {
	return int(r.writePos.Load() - r.readPos.Load())
}

// Cap mengembalikan kapasitas total ring.
func (r *SampleRing) Cap() int { return len(r.buf) }
