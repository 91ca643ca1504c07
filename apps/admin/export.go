package main

import (
	"context"
	"fmt"
	"os"
)

func (cli *commandLine) export(out string) error {
	cli.store.Bootstrap(context.Background())

	src, err := cli.store.ExportSeedSource()
	if err != nil {
		return err
	}
	if out == "" {
		fmt.Print(src)
		return nil
	}
	return os.WriteFile(out, []byte(src), 0o644)
}
