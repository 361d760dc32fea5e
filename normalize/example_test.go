// SPDX-License-Identifier: EPL-2.0

package normalize_test

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/ik5/pcmscribe/internal/audiotest"
	"github.com/ik5/pcmscribe/normalize"
	"github.com/ik5/pcmscribe/transcode"
	"github.com/sirupsen/logrus"
)

func ExampleNew() {
	// A transcoder that always produces the same three samples.
	tr := transcode.Func(func(_ context.Context, _, out string) error {
		return os.WriteFile(out, audiotest.CanonicalContainer([]int16{0, 32767, -32768}), 0o600)
	})

	log := logrus.New()
	log.SetOutput(io.Discard)

	n := normalize.New(tr, normalize.WithLogger(log))
	samples, err := n.Normalize(context.Background(), "speech.m4a")
	fmt.Println(samples, err)
	// Output: [0 1 -1] <nil>
}
