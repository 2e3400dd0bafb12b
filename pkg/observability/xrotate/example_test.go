package xrotate_test

import (
	"fmt"
	"time"

	"github.com/omeyang/xfilelog/pkg/observability/xrotate"
)

func ExampleNamer() {
	n := xrotate.Namer{Prefix: "worker", Rolling: true, Pattern: "yyyy-MM-dd"}

	fmt.Println(n.FileName(time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)))
	fmt.Println(n.FileName(time.Date(2024, 3, 6, 0, 0, 0, 0, time.UTC)))
	// Output:
	// worker.2024-03-05.log
	// worker.2024-03-06.log
}

func ExampleConvertLayout() {
	fmt.Println(xrotate.ConvertLayout("yyyyMMdd_HHmm"))
	// Output:
	// 20060102_1504
}
