package codec

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math"

	"github.com/mjibson/go-dsp/fft"
)

// Spectrogram menciptakan biner gambar PNG dari sampel PCM float32.
func Spectrogram(pcm []float32) ([]byte, error) {
	const width = 800
	const height = 200
	const fftSize = 1024

	img := image.NewRGBA(image.Rect(0, 0, width, height))

	// Hitung berapa banyak sampel per kolom pixel
	step := len(pcm) / width
	if step < fftSize {
		step = fftSize
	}

	for x := 0; x < width; x++ {
		start := x * step
		if start+fftSize > len(pcm) {
			break
		}

		// Ambil potongan PCM dan konversi ke float64 untuk FFT
		window := make([]float64, fftSize)
		for i := 0; i < fftSize; i++ {
			window[i] = float64(pcm[start+i])
		}

		coeffs := fft.FFTReal(window)

		// Gambar intensitas frekuensi ke pixel (Y axis)
		for y := 0; y < height; y++ {
			idx := (height - 1 - y) * (fftSize / 2) / height
			mag := math.Sqrt(real(coeffs[idx])*real(coeffs[idx]) + imag(coeffs[idx])*imag(coeffs[idx]))

			// Input float32 [-1,1]; normalisasi intensitas ke 0-255
			intensity := uint8(math.Min(mag*1600, 255))
			img.Set(x, y, color.RGBA{R: intensity / 2, G: intensity, B: intensity / 2, A: 255})
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
