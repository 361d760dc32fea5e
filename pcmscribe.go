// SPDX-License-Identifier: EPL-2.0

package pcmscribe

import (
	"context"

	"github.com/ik5/pcmscribe/formats"
	"github.com/ik5/pcmscribe/normalize"
	"github.com/ik5/pcmscribe/transcode"
	"github.com/sirupsen/logrus"
)

// NewNormalizer returns a Normalizer using the native transcoder with every
// bundled decoder registered.
func NewNormalizer(log logrus.FieldLogger, opts ...normalize.Option) *normalize.Normalizer {
	tr := transcode.NewNative(formats.DefaultRegistry(), log)
	if log != nil {
		opts = append([]normalize.Option{normalize.WithLogger(log)}, opts...)
	}
	return normalize.New(tr, opts...)
}

// NormalizeFile converts path to mono 16 kHz samples in [-1,1] using the
// native transcoder and the system temporary directory.
func NormalizeFile(ctx context.Context, path string) ([]float32, error) {
	return NewNormalizer(nil).Normalize(ctx, path)
}
