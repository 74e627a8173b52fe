package player

import (
	"sync"

	"sonicstream/logger"
	"sonicstream/model"
)

// noIndex 表示当前曲目不在队列中（或还没有队列）
const noIndex = -1

// State is an immutable snapshot of the playback state, delivered to
// subscribers after every transition.
type State struct {
	CurrentTrack *model.Track
	CurrentIndex int
	QueueLength  int
	IsPlaying    bool
	Progress     float64 // elapsed seconds
	Duration     float64 // seconds
	Volume       float64 // 0.0 - 1.0
}

// Player owns the ordered play queue, the current position and the single
// audio output. All transport controls go through it.
//
// 状态变更来自两个方向：UI调用与输出的异步通知，因此内部用互斥锁保护；
// 输出操作在锁外执行，避免同步回调造成死锁。
type Player struct {
	mu sync.Mutex

	out          Output
	queue        []model.Track
	currentIndex int
	currentTrack *model.Track
	isPlaying    bool
	progress     float64
	duration     float64
	volume       float64

	// generation 为每次 PlayTrack 递增。后发的 PlayTrack 直接取代前一次，
	// 被取代的异步启动回调携带旧的代号，到达时被丢弃，不会污染当前状态
	generation uint64

	subs []chan State
}

// New creates a Player driving the given output. Volume starts at 1.0.
func New(out Output) *Player {
	return &Player{
		out:          out,
		queue:        make([]model.Track, 0),
		currentIndex: noIndex,
		volume:       1.0,
	}
}

// Subscribe returns a channel receiving state snapshots after every
// transition. Slow subscribers miss intermediate states rather than
// blocking playback.
func (p *Player) Subscribe() <-chan State {
	ch := make(chan State, 16)
	p.mu.Lock()
	p.subs = append(p.subs, ch)
	p.mu.Unlock()
	return ch
}

// Snapshot returns the current playback state.
func (p *Player) Snapshot() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snapshotLocked()
}

// PlayTrack starts playback of track. If newQueue is non-empty it replaces
// the queue wholesale; otherwise track is located in the existing queue.
// A track absent from the resolved queue plays with no queue position:
// NextTrack is then a no-op and PrevTrack restarts the track.
func (p *Player) PlayTrack(track model.Track, newQueue []model.Track) {
	p.mu.Lock()
	if len(newQueue) > 0 {
		p.queue = newQueue
	}
	p.currentIndex = findIndex(p.queue, track.ID)
	t := track
	p.currentTrack = &t
	p.progress = 0
	p.duration = track.Duration
	p.generation++
	gen := p.generation
	vol := p.volume
	out := p.out
	p.mu.Unlock()
	p.notify()

	out.Load(track.AudioURL)
	out.SetVolume(vol)
	out.Play(func(err error) {
		p.handlePlayResult(gen, track.Title, err)
	})
}

// NextTrack advances to the next queue entry. At the end of the queue (or
// with no queue position) it is a no-op; there is no wraparound.
func (p *Player) NextTrack() {
	p.mu.Lock()
	if p.currentIndex == noIndex || p.currentIndex >= len(p.queue)-1 {
		p.mu.Unlock()
		return
	}
	next := p.queue[p.currentIndex+1]
	p.mu.Unlock()

	p.PlayTrack(next, nil)
}

// PrevTrack moves to the previous queue entry. At position 0 (or with no
// queue position) it restarts the current track from time zero instead.
func (p *Player) PrevTrack() {
	p.mu.Lock()
	if p.currentIndex > 0 {
		prev := p.queue[p.currentIndex-1]
		p.mu.Unlock()
		p.PlayTrack(prev, nil)
		return
	}
	p.progress = 0
	out := p.out
	p.mu.Unlock()
	p.notify()

	out.Seek(0)
}

// TogglePlay pauses if playing and resumes if paused.
func (p *Player) TogglePlay() {
	p.mu.Lock()
	if p.currentTrack == nil {
		p.mu.Unlock()
		return
	}
	p.isPlaying = !p.isPlaying
	playing := p.isPlaying
	out := p.out
	p.mu.Unlock()
	p.notify()

	if playing {
		out.Resume()
	} else {
		out.Pause()
	}
}

// Seek jumps to the given position. Progress updates optimistically
// without waiting for the output to confirm.
func (p *Player) Seek(seconds float64) {
	p.mu.Lock()
	p.progress = seconds
	out := p.out
	p.mu.Unlock()
	p.notify()

	out.Seek(seconds)
}

// ChangeVolume takes a 0-100 scale value, converts it to 0.0-1.0 and
// applies it to both stored state and the output. Last value wins.
func (p *Player) ChangeVolume(value int) {
	vol := float64(value) / 100
	p.mu.Lock()
	p.volume = vol
	out := p.out
	p.mu.Unlock()
	p.notify()

	out.SetVolume(vol)
}

// HandleProgress is called by the output on time-progress and
// metadata-ready notifications.
func (p *Player) HandleProgress(position, duration float64) {
	p.mu.Lock()
	p.progress = position
	if duration > 0 {
		p.duration = duration
	}
	p.mu.Unlock()
	p.notify()
}

// HandleEnded is called by the output when the current track completes.
// It behaves exactly like NextTrack; at the end of the queue playback
// stops instead of looping.
func (p *Player) HandleEnded() {
	p.mu.Lock()
	if p.currentIndex != noIndex && p.currentIndex < len(p.queue)-1 {
		next := p.queue[p.currentIndex+1]
		p.mu.Unlock()
		p.PlayTrack(next, nil)
		return
	}
	p.isPlaying = false
	p.mu.Unlock()
	p.notify()
}

// handlePlayResult 处理异步启动的结果。迟到的回调（代号已过期）被丢弃
func (p *Player) handlePlayResult(gen uint64, title string, err error) {
	p.mu.Lock()
	if gen != p.generation {
		p.mu.Unlock()
		return
	}
	if err != nil {
		// 播放失败是状态而不是异常：停在未播放状态，只记日志
		p.isPlaying = false
		p.mu.Unlock()
		p.notify()
		logger.Error("[Player] 播放启动失败",
			logger.String("title", title),
			logger.ErrorField(err))
		return
	}
	p.isPlaying = true
	p.mu.Unlock()
	p.notify()
}

func (p *Player) snapshotLocked() State {
	return State{
		CurrentTrack: p.currentTrack,
		CurrentIndex: p.currentIndex,
		QueueLength:  len(p.queue),
		IsPlaying:    p.isPlaying,
		Progress:     p.progress,
		Duration:     p.duration,
		Volume:       p.volume,
	}
}

func (p *Player) notify() {
	p.mu.Lock()
	state := p.snapshotLocked()
	subs := make([]chan State, len(p.subs))
	copy(subs, p.subs)
	p.mu.Unlock()

	for _, ch := range subs {
		select {
		case ch <- state:
		default: // subscriber is behind, drop this snapshot
		}
	}
}

func findIndex(queue []model.Track, trackID int64) int {
	for i, t := range queue {
		if t.ID == trackID {
			return i
		}
	}
	return noIndex
}
