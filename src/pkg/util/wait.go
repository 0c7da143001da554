package util

import (
	"time"

	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
)

// WaitForSeconds sleeps for the given number of seconds, logging the pause.
func WaitForSeconds(seconds float64) {
	tl.Log(tl.Verbose, palette.CyanDim, "Waiting for %v seconds", seconds)
	time.Sleep(time.Duration(seconds * float64(time.Second)))
}
