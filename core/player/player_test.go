package player

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"sonicstream/model"
)

// fakeOutput 记录对输出的所有调用，Play的回调由测试显式触发，
// 以便模拟异步启动的成功、失败和乱序到达
type fakeOutput struct {
	mu      sync.Mutex
	loads   []string
	volumes []float64
	seeks   []float64
	pauses  int
	resumes int
	dones   []func(error)
}

func (f *fakeOutput) Load(url string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loads = append(f.loads, url)
}

func (f *fakeOutput) Play(done func(error)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.dones = append(f.dones, done)
}

func (f *fakeOutput) Pause() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pauses++
}

func (f *fakeOutput) Resume() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resumes++
}

func (f *fakeOutput) Seek(seconds float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seeks = append(f.seeks, seconds)
}

func (f *fakeOutput) SetVolume(volume float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.volumes = append(f.volumes, volume)
}

// resolve 触发第i次Play的结果回调
func (f *fakeOutput) resolve(t *testing.T, i int, err error) {
	t.Helper()
	f.mu.Lock()
	require.Greater(t, len(f.dones), i, "no pending play callback at index %d", i)
	done := f.dones[i]
	f.mu.Unlock()
	done(err)
}

func (f *fakeOutput) lastLoad() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.loads) == 0 {
		return ""
	}
	return f.loads[len(f.loads)-1]
}

func (f *fakeOutput) loadCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.loads)
}

func testQueue() []model.Track {
	return []model.Track{
		{ID: 1, Title: "A", AudioURL: "http://cdn/a.mp3", Duration: 100},
		{ID: 2, Title: "B", AudioURL: "http://cdn/b.mp3", Duration: 200},
		{ID: 3, Title: "C", AudioURL: "http://cdn/c.mp3", Duration: 300},
	}
}

func TestPlayTrackReplacesQueueAndResolvesIndex(t *testing.T) {
	out := &fakeOutput{}
	p := New(out)
	q := testQueue()

	p.PlayTrack(q[1], q)

	state := p.Snapshot()
	require.Equal(t, int64(2), state.CurrentTrack.ID)
	require.Equal(t, 1, state.CurrentIndex)
	require.Equal(t, 3, state.QueueLength)
	require.False(t, state.IsPlaying, "playing only after the async start resolves")
	require.Equal(t, "http://cdn/b.mp3", out.lastLoad())

	out.resolve(t, 0, nil)
	require.True(t, p.Snapshot().IsPlaying)
}

func TestPlayTrackReusesExistingQueue(t *testing.T) {
	out := &fakeOutput{}
	p := New(out)
	q := testQueue()

	p.PlayTrack(q[0], q)
	out.resolve(t, 0, nil)

	// 不传新队列：在现有队列中定位
	p.PlayTrack(q[2], nil)
	out.resolve(t, 1, nil)

	state := p.Snapshot()
	require.Equal(t, 2, state.CurrentIndex)
	require.Equal(t, 3, state.QueueLength)
}

func TestNextTrackAdvancesAndStopsAtTail(t *testing.T) {
	out := &fakeOutput{}
	p := New(out)
	q := testQueue()

	p.PlayTrack(q[1], q) // index 1 (B)
	out.resolve(t, 0, nil)

	p.NextTrack()
	out.resolve(t, 1, nil)

	state := p.Snapshot()
	require.Equal(t, 2, state.CurrentIndex)
	require.Equal(t, int64(3), state.CurrentTrack.ID)
	require.True(t, state.IsPlaying)

	// 队尾再next是空操作：索引不变，不重新加载，播放状态不受影响
	loadsBefore := out.loadCount()
	p.NextTrack()
	state = p.Snapshot()
	require.Equal(t, 2, state.CurrentIndex)
	require.True(t, state.IsPlaying)
	require.Equal(t, loadsBefore, out.loadCount())
}

func TestPrevTrackMovesBack(t *testing.T) {
	out := &fakeOutput{}
	p := New(out)
	q := testQueue()

	p.PlayTrack(q[2], q)
	out.resolve(t, 0, nil)

	p.PrevTrack()
	out.resolve(t, 1, nil)

	state := p.Snapshot()
	require.Equal(t, 1, state.CurrentIndex)
	require.Equal(t, int64(2), state.CurrentTrack.ID)
}

func TestPrevTrackAtHeadRestartsCurrent(t *testing.T) {
	out := &fakeOutput{}
	p := New(out)
	q := testQueue()

	p.PlayTrack(q[0], q)
	out.resolve(t, 0, nil)
	p.Seek(42)

	p.PrevTrack()

	state := p.Snapshot()
	require.Equal(t, 0, state.CurrentIndex, "index unchanged at head")
	require.Equal(t, int64(1), state.CurrentTrack.ID)
	require.Equal(t, 0.0, state.Progress, "progress reset to zero")
	out.mu.Lock()
	require.Equal(t, []float64{42, 0}, out.seeks)
	out.mu.Unlock()
}

func TestTogglePlay(t *testing.T) {
	out := &fakeOutput{}
	p := New(out)
	q := testQueue()

	// 没有当前曲目时是空操作
	p.TogglePlay()
	require.False(t, p.Snapshot().IsPlaying)

	p.PlayTrack(q[0], q)
	out.resolve(t, 0, nil)

	p.TogglePlay()
	require.False(t, p.Snapshot().IsPlaying)
	p.TogglePlay()
	require.True(t, p.Snapshot().IsPlaying)

	out.mu.Lock()
	require.Equal(t, 1, out.pauses)
	require.Equal(t, 1, out.resumes)
	out.mu.Unlock()
}

func TestSeekUpdatesProgressOptimistically(t *testing.T) {
	out := &fakeOutput{}
	p := New(out)
	q := testQueue()

	p.PlayTrack(q[0], q)
	p.Seek(33.5)

	require.Equal(t, 33.5, p.Snapshot().Progress)
	out.mu.Lock()
	require.Equal(t, []float64{33.5}, out.seeks)
	out.mu.Unlock()
}

func TestChangeVolumeLastValueWins(t *testing.T) {
	out := &fakeOutput{}
	p := New(out)

	p.ChangeVolume(50)
	require.Equal(t, 0.5, p.Snapshot().Volume)

	p.ChangeVolume(0)
	p.ChangeVolume(75)
	require.Equal(t, 0.75, p.Snapshot().Volume)

	out.mu.Lock()
	require.Equal(t, []float64{0.5, 0, 0.75}, out.volumes)
	out.mu.Unlock()
}

func TestVolumeAppliedOnPlay(t *testing.T) {
	out := &fakeOutput{}
	p := New(out)
	q := testQueue()

	p.ChangeVolume(30)
	p.PlayTrack(q[0], q)

	out.mu.Lock()
	require.Equal(t, 0.3, out.volumes[len(out.volumes)-1])
	out.mu.Unlock()
}

func TestHandleEndedAutoAdvances(t *testing.T) {
	out := &fakeOutput{}
	p := New(out)
	q := testQueue()

	p.PlayTrack(q[0], q)
	out.resolve(t, 0, nil)

	p.HandleEnded()
	out.resolve(t, 1, nil)

	state := p.Snapshot()
	require.Equal(t, 1, state.CurrentIndex)
	require.Equal(t, int64(2), state.CurrentTrack.ID)
	require.True(t, state.IsPlaying)
}

func TestHandleEndedStopsAtQueueEnd(t *testing.T) {
	out := &fakeOutput{}
	p := New(out)
	q := testQueue()

	p.PlayTrack(q[2], q)
	out.resolve(t, 0, nil)

	p.HandleEnded()

	state := p.Snapshot()
	require.Equal(t, 2, state.CurrentIndex, "no wraparound")
	require.False(t, state.IsPlaying)
}

func TestHandleProgressUpdatesState(t *testing.T) {
	out := &fakeOutput{}
	p := New(out)
	q := testQueue()

	p.PlayTrack(q[0], q)
	p.HandleProgress(12.5, 98)

	state := p.Snapshot()
	require.Equal(t, 12.5, state.Progress)
	require.Equal(t, 98.0, state.Duration)
}

func TestPlayFailureRevertsToStopped(t *testing.T) {
	out := &fakeOutput{}
	p := New(out)
	q := testQueue()

	p.PlayTrack(q[0], q)
	out.resolve(t, 0, errors.New("decode error"))

	state := p.Snapshot()
	require.False(t, state.IsPlaying)
	require.Equal(t, int64(1), state.CurrentTrack.ID, "current track unchanged on failure")
}

func TestStaleStartCallbackIsIgnored(t *testing.T) {
	out := &fakeOutput{}
	p := New(out)
	q := testQueue()

	p.PlayTrack(q[0], q) // 第一次启动挂起
	p.PlayTrack(q[1], nil)

	// 被取代的第一次启动晚些才失败，不得污染当前状态
	out.resolve(t, 0, errors.New("network error"))
	require.Equal(t, int64(2), p.Snapshot().CurrentTrack.ID)

	out.resolve(t, 1, nil)
	state := p.Snapshot()
	require.True(t, state.IsPlaying)
	require.Equal(t, int64(2), state.CurrentTrack.ID)

	// 反向：旧回调成功到达同样被丢弃
	p.PlayTrack(q[2], nil)
	out.resolve(t, 2, nil)
	p.PlayTrack(q[0], nil)
	out.resolve(t, 2, nil) // stale duplicate resolution has no effect
	require.Equal(t, int64(1), p.Snapshot().CurrentTrack.ID)
}

func TestTrackAbsentFromQueueHasNoPosition(t *testing.T) {
	out := &fakeOutput{}
	p := New(out)
	q := testQueue()
	stray := model.Track{ID: 99, Title: "Z", AudioURL: "http://cdn/z.mp3"}

	p.PlayTrack(stray, q)
	out.resolve(t, 0, nil)

	state := p.Snapshot()
	require.Equal(t, -1, state.CurrentIndex)
	require.Equal(t, int64(99), state.CurrentTrack.ID)

	// 没有队列位置：next是空操作，prev重头播放当前曲目
	loadsBefore := out.loadCount()
	p.NextTrack()
	require.Equal(t, loadsBefore, out.loadCount())
	require.Equal(t, int64(99), p.Snapshot().CurrentTrack.ID)

	p.Seek(10)
	p.PrevTrack()
	state = p.Snapshot()
	require.Equal(t, int64(99), state.CurrentTrack.ID)
	require.Equal(t, 0.0, state.Progress)
}

func TestSubscribeReceivesSnapshots(t *testing.T) {
	out := &fakeOutput{}
	p := New(out)
	q := testQueue()

	ch := p.Subscribe()
	p.PlayTrack(q[0], q)

	state := <-ch
	require.Equal(t, int64(1), state.CurrentTrack.ID)
	require.Equal(t, 0, state.CurrentIndex)

	out.resolve(t, 0, nil)
	state = <-ch
	require.True(t, state.IsPlaying)
}
