package audioengine

import "testing"

func TestPlaybackState_Snapshot(t *testing.T) {
	t.Parallel()

	st := newPlaybackState(44100, 2, 441000)
	st.setPlaying(true)
	st.setCurrentFrame(88200)

	playing, cur, dur := st.Snapshot()
	if !playing {
		t.Fatal("Snapshot() playing = false, want true")
	}
	if cur != 2.0 {
		t.Fatalf("Snapshot() current = %v, want 2.0", cur)
	}
	if dur != 10.0 {
		t.Fatalf("Snapshot() duration = %v, want 10.0", dur)
	}
}

func TestPlaybackState_SnapshotWithoutRate(t *testing.T) {
	t.Parallel()

	st := newPlaybackState(0, 0, 0)
	_, cur, dur := st.Snapshot()
	if cur != 0 || dur != 0 {
		t.Fatalf("Snapshot() without rate = (%v, %v), want zeros", cur, dur)
	}
}

func TestPlaybackState_SeekLastWriterWins(t *testing.T) {
	t.Parallel()

	st := newPlaybackState(44100, 2, 441000)
	st.requestSeek(1000)
	st.requestSeek(2000)

	if !st.seekRequested() {
		t.Fatal("seekRequested() = false")
	}
	if got := st.seekFrame(); got != 2000 {
		t.Fatalf("seekFrame() = %d, want 2000 (last writer wins)", got)
	}
}

func TestPlaybackState_StopIsLatch(t *testing.T) {
	t.Parallel()

	st := newPlaybackState(44100, 2, 441000)
	if st.stopRequested() {
		t.Fatal("stopRequested() before requestStop = true")
	}
	st.requestStop()
	st.requestStop() // idempotent
	if !st.stopRequested() {
		t.Fatal("stopRequested() = false after requestStop")
	}
}

func TestPlaybackState_Toggle(t *testing.T) {
	t.Parallel()

	st := newPlaybackState(44100, 2, 441000)
	st.togglePlaying()
	if !st.Playing() {
		t.Fatal("toggle from paused should play")
	}
	st.togglePlaying()
	if st.Playing() {
		t.Fatal("toggle from playing should pause")
	}
}
