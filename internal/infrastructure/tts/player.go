package tts

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
)

var (
	speakerOnce    sync.Once
	speakerInitErr error
)

// playFile decodes the MP3 artifact and blocks until the speaker has played
// it to the end.
func playFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open artifact: %w", err)
	}

	streamer, format, err := mp3.Decode(f)
	if err != nil {
		f.Close()
		return fmt.Errorf("decode artifact: %w", err)
	}
	defer streamer.Close()

	// The speaker can only be initialized once per process, so the first
	// artifact's sample rate wins.
	speakerOnce.Do(func() {
		speakerInitErr = speaker.Init(format.SampleRate, format.SampleRate.N(100*time.Millisecond))
	})
	if speakerInitErr != nil {
		return fmt.Errorf("init speaker: %w", speakerInitErr)
	}

	done := make(chan struct{})
	speaker.Play(beep.Seq(streamer, beep.Callback(func() {
		close(done)
	})))
	<-done

	return nil
}
