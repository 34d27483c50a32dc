package audioengine

import (
	"io"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

// fakeSession memproduksi PCM sintetis yang nilainya ditentukan oleh
// indeks frame sumber, jadi test bisa membuktikan sampel mana yang
// sampai ke perangkat.
type fakeSession struct {
	rate     int
	channels int
	total    int

	valueAt func(frame int) float32
	seekErr error

	pos   int
	block []float32

	mu     sync.Mutex
	closed bool
}

func newFakeSession(rate, channels, totalFrames int, valueAt func(int) float32) *fakeSession {
	if valueAt == nil {
		valueAt = func(int) float32 { return 0.25 }
	}
	return &fakeSession{
		rate:     rate,
		channels: channels,
		total:    totalFrames,
		valueAt:  valueAt,
		block:    make([]float32, 512*channels),
	}
}

func (f *fakeSession) SampleRate() int  { return f.rate }
func (f *fakeSession) Channels() int    { return f.channels }
func (f *fakeSession) TotalFrames() int { return f.total }

func (f *fakeSession) NextBlock() ([]float32, error) {
	if f.pos >= f.total {
		return nil, io.EOF
	}
	frames := 512
	if f.total-f.pos < frames {
		frames = f.total - f.pos
	}
	out := f.block[:frames*f.channels]
	for i := 0; i < frames; i++ {
		v := f.valueAt(f.pos + i)
		for c := 0; c < f.channels; c++ {
			out[i*f.channels+c] = v
		}
	}
	f.pos += frames
	return out, nil
}

func (f *fakeSession) SeekFrame(target int) (int, error) {
	if f.seekErr != nil {
		return 0, f.seekErr
	}
	if target > f.total {
		target = f.total
	}
	f.pos = target
	return target, nil
}

func (f *fakeSession) Reset() {}

func (f *fakeSession) Close() error {
	f.mu.Lock()
	f.closed = true
	f.mu.Unlock()
	return nil
}

// isClosed aman dibaca dari goroutine test selagi decoder masih jalan.
func (f *fakeSession) isClosed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

// fakeDevice merekam semua byte PCM yang ditulis loop output. Write
// diberi jeda kecil untuk meniru pacing perangkat sungguhan.
type fakeDevice struct {
	mu     sync.Mutex
	data   []byte
	closed bool

	writeDelay time.Duration
	openErr    error
}

func (d *fakeDevice) Write(p []byte) (int, error) {
	if d.writeDelay > 0 {
		time.Sleep(d.writeDelay)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.data = append(d.data, p...)
	return len(p), nil
}

func (d *fakeDevice) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
	return nil
}

func (d *fakeDevice) written() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.data)
}

// samples men-decode rekaman PCM int16 LE menjadi int16.
func (d *fakeDevice) samples() []int16 {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]int16, len(d.data)/2)
	for i := range out {
		out[i] = int16(uint16(d.data[2*i]) | uint16(d.data[2*i+1])<<8)
	}
	return out
}

// installFakes memasang sesi dan perangkat palsu pada hook paket, lalu
// memulihkannya saat test selesai. Test yang memakai ini tidak boleh
// paralel karena hook-nya variabel paket.
func installFakes(t *testing.T, sess *fakeSession, dev *fakeDevice) {
	t.Helper()
	prevSession := openSession
	prevDevice := openOutputDevice
	openSession = func(string) (DecodeSession, error) { return sess, nil }
	openOutputDevice = func(rate, channels, bufferBytes int) (outputDevice, error) {
		if dev.openErr != nil {
			return nil, dev.openErr
		}
		return dev, nil
	}
	t.Cleanup(func() {
		openSession = prevSession
		openOutputDevice = prevDevice
	})
}

func testLog() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

// waitFor poll kondisi sampai benar atau timeout.
func waitFor(t *testing.T, timeout time.Duration, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}
