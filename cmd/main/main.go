package main

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/RaulAlejandroSalas/aws-lambda-dragon-demo/pkg"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"
	"github.com/snwfdhmp/errlog"
)

type config struct {
	Port     int           `default:"8000"`
	Timeout  time.Duration `default:"60s"`
	Throttle int           `default:"100"`
}

var (
	c       config
	handler *pkg.Handler
)

func init() {
	// .env is optional, real environment wins
	if err := godotenv.Load(); err != nil {
		logrus.WithError(err).Debug("no .env file loaded")
	}
	// load config
	if err := envconfig.Process("", &c); errlog.Debug(err) {
		panic(err)
	}
	appConfig, err := pkg.LoadConfig()
	if errlog.Debug(err) {
		panic(err)
	}
	// setup logger
	if err := pkg.SetupLogger(appConfig); errlog.Debug(err) {
		panic(err)
	}
	middleware.DefaultLogger = middleware.RequestLogger(
		&middleware.DefaultLogFormatter{
			Logger: logrus.StandardLogger(), NoColor: !appConfig.LogColor,
		},
	)
	// build aws clients
	func() {
		ctx, cancel := context.WithTimeout(context.Background(), c.Timeout)
		defer cancel()
		h, err := pkg.NewHandlerFromConfig(ctx, appConfig)
		if errlog.Debug(err) {
			panic(err)
		}
		handler = h
	}()
}

func main() {
	r := chi.NewRouter()
	r.Use(middleware.Timeout(c.Timeout))
	r.Use(middleware.Throttle(c.Throttle))
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/dragons", handler.ServeHTTP)

	addr := ":" + strconv.Itoa(c.Port)
	logrus.Infof("Listening on %s", addr)
	if err := http.ListenAndServe(addr, r); errlog.Debug(err) {
		panic(err)
	}
}
