package hexmerge_test

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/marcinbor85/hexmerge"
)

func ExampleMerger_Merge() {
	input := strings.Join([]string{
		":02000004800179",
		":01001000AA45",
		":01000500BB3F",
		":00000001FF",
	}, "\n")

	m := hexmerge.NewMerger(hexmerge.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	if _, err := m.Merge(strings.NewReader(input), os.Stdout); err != nil {
		panic(err)
	}
	// Output:
	// :02000004A00159
	// :01000500BB3F
	// :01001000AA45
	// :00000001FF
}

func ExampleParseRecord() {
	rec, err := hexmerge.ParseRecord(":0400000501000000F6")
	if err != nil {
		panic(err)
	}
	fmt.Printf("%s at 0x%04X: % X\n", rec.Type, rec.Address, rec.Data)
	// Output:
	// start linear address at 0x0000: 01 00 00 00
}

func ExampleGenerateRecord() {
	fmt.Println(hexmerge.GenerateRecord(hexmerge.DataRecord, 0x0010, []byte{0xAA}))
	fmt.Println(hexmerge.NewExtendedLinearAddress(0xA001))
	// Output:
	// :01001000AA45
	// :02000004A00159
}
