// main.go 是 gocloc 的程序入口，只负责注入版本号、执行根命令和设置退出码。
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"gocloc/cmd"
)

// version 默认值为 dev。
// 发布时可以通过 -ldflags "-X main.version=vX.Y.Z" 覆盖该值。
var version = "dev"

func main() {
	if err := cmd.Execute(version); err != nil {
		fmt.Fprintf(os.Stderr, "gocloc error: %v\n", err)
		if errors.Is(err, context.Canceled) {
			os.Exit(130)
		}
		os.Exit(1)
	}
}
