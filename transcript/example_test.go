// SPDX-License-Identifier: EPL-2.0

package transcript_test

import (
	"fmt"
	"os"

	"github.com/ik5/pcmscribe/recognize"
	"github.com/ik5/pcmscribe/transcript"
)

func ExampleLine() {
	fmt.Println(transcript.Line(recognize.Segment{Start: 0, End: 150, Text: "hi"}, false))
	// Output: [00:00.000 -> 00:01.500] hi
}

func ExampleWriter_Write() {
	w, _ := transcript.NewWriter(os.Stdout, transcript.Options{Format: transcript.FormatSRT})
	_ = w.Write([]recognize.Segment{{Start: 0, End: 150, Text: " hi"}})
	// Output:
	// 1
	// 00:00:00,000 --> 00:00:01,500
	// hi
}
