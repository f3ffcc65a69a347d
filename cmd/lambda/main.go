package main

import (
	"context"
	"os"

	"github.com/RaulAlejandroSalas/aws-lambda-dragon-demo/pkg"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/snwfdhmp/errlog"
)

func main() {
	c, err := pkg.LoadConfig()
	if errlog.Debug(err) {
		panic(err)
	}
	// cloudwatch gets structured lines unless told otherwise
	if _, ok := os.LookupEnv("LOG_JSON"); !ok {
		c.LogJSON = true
	}
	if err := pkg.SetupLogger(c); errlog.Debug(err) {
		panic(err)
	}
	// clients are built once and reused across invocations
	handler, err := pkg.NewHandlerFromConfig(context.Background(), c)
	if errlog.Debug(err) {
		panic(err)
	}
	lambda.Start(handler.HandleRequest)
}
