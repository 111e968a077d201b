package main

import (
	"context"

	"github.com/sirupsen/logrus"
)

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		logrus.Fatal(err)
	}
}
