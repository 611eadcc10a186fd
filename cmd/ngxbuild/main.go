package main

import "github.com/goplus/ngxbuild/cmd/ngxbuild/internal"

func main() {
	internal.Execute()
}
