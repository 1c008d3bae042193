package main

import (
	"fmt"
	"time"

	"k8s.io/apimachinery/pkg/labels"
	"k8s.io/apimachinery/pkg/selection"

	"github.com/Kthulhu/fileseq/pkg/frameset"
	"github.com/Kthulhu/fileseq/pkg/frametable"
)

const testRange = "-1-19x5,20-24x2,25,34,365-363,-2--4"

var testFrames = []int64{-1, 4, 9, 14, 19, 20, 22, 24, 25, 34, 365, 364, 363, -2, -3, -4}

func main() {
	fs, err := frameset.New(testRange)
	if err != nil {
		panic(err)
	}
	fmt.Println("frange", fs)
	fmt.Println("frames", fs.Frames())
	fmt.Println("padded", fs.FrameRange(4))
	fmt.Println("inverted", fs.InvertedFrameRange(0))
	fmt.Println("normalized", fs.Normalize())
	fmt.Println("compressed", frameset.FramesToFrameRange(testFrames, false, 0, false))

	other, err := frameset.New("20-40")
	if err != nil {
		panic(err)
	}
	fmt.Println("union", fs.Union(other))
	fmt.Println("intersection", fs.Intersection(other))

	tbl, err := frametable.New(fs.Normalize())
	if err != nil {
		panic(err)
	}
	for i := 0; i < 3; i++ {
		frame, err := tbl.ClaimDynamic(labels.Set{"status": "rendering"})
		if err != nil {
			panic(err)
		}
		fmt.Println("claimed", frame)
	}
	req, err := labels.NewRequirement("status", selection.Equals, []string{"rendering"})
	if err != nil {
		panic(err)
	}
	fmt.Println("rendering", tbl.GetByLabel(labels.NewSelector().Add(*req)))
	fmt.Println("free", tbl.Free())

	const count = 10000
	start := time.Now()
	for i := 0; i < count; i++ {
		if _, err := frameset.New(testRange); err != nil {
			panic(err)
		}
	}
	fmt.Printf("parse took %.3f usecs per run\n",
		float64(time.Since(start).Microseconds())/count)

	start = time.Now()
	for i := 0; i < count; i++ {
		frameset.FramesToFrameRange(testFrames, false, 0, false)
	}
	fmt.Printf("compress took %.3f usecs per run\n",
		float64(time.Since(start).Microseconds())/count)
}
