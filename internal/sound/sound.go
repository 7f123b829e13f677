// Package sound plays a short decaying click through the default audio
// device whenever a traced relay toggles, as an audible analogue of a real
// relay computer's armature clack.
package sound

import (
	"fmt"
	"math"

	"github.com/gordonklaus/portaudio"
)

const sampleRate = 44100

// clickLength is how many samples a single click's decay runs for.
const clickLength = sampleRate / 20 // 50ms

// Clicker streams synthesized click waveforms to the default output device.
type Clicker struct {
	stream  *portaudio.Stream
	channel chan float32
}

// Open initializes portaudio and starts a stream fed from an internal
// buffer; call Click to enqueue a click and Close when done.
func Open() (*Clicker, error) {
	c := &Clicker{channel: make(chan float32, sampleRate)}
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("sound: portaudio.Initialize: %w", err)
	}
	cb := func(out []float32) {
		for i := range out {
			select {
			case x := <-c.channel:
				out[i] = x * 0.2
			default:
				out[i] = 0
			}
		}
	}
	stream, err := portaudio.OpenDefaultStream(0, 2, sampleRate, 0, cb)
	if err != nil {
		portaudio.Terminate()
		return nil, fmt.Errorf("sound: OpenDefaultStream: %w", err)
	}
	c.stream = stream
	if err := stream.Start(); err != nil {
		portaudio.Terminate()
		return nil, fmt.Errorf("sound: stream.Start: %w", err)
	}
	return c, nil
}

// Click enqueues one decaying click waveform. It does not block; if the
// buffer is full, samples are dropped rather than applying backpressure to
// the caller's step loop.
func (c *Clicker) Click() {
	for i := 0; i < clickLength; i++ {
		decay := float32(math.Exp(-6 * float64(i) / clickLength))
		sample := decay * float32(math.Sin(2*math.Pi*900*float64(i)/sampleRate))
		select {
		case c.channel <- sample:
		default:
			return
		}
	}
}

// Close stops the stream and terminates portaudio.
func (c *Clicker) Close() {
	c.stream.Close()
	portaudio.Terminate()
}
