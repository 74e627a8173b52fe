package player

// Output 是唯一的音频输出句柄，由外部音频原语实现（例如浏览器audio元素的桥接）
//
// Play 是异步的：加载和解码可能失败，结果通过 done 回调送达，
// 回调必须在 Play 返回之后从输出自身的goroutine调用。
// 进度和播放结束通知由宿主接线到 Player.HandleProgress / Player.HandleEnded。
type Output interface {
	// Load replaces the current source with the given audio URL.
	Load(url string)
	// Play begins playback of the loaded source. done is called exactly once.
	Play(done func(err error))
	// Pause suspends playback; Resume continues it.
	Pause()
	Resume()
	// Seek jumps to the given position in seconds.
	Seek(seconds float64)
	// SetVolume applies a volume in the range 0.0 to 1.0.
	SetVolume(volume float64)
}
