// onboardctl は設定された保存先のオンボーディングデータを直接操作する管理用 CLI です。
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd(defaultOpener).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
