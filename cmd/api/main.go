package main

import (
	"context"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/awslabs/aws-lambda-go-api-proxy/httpadapter"

	"github.com/saulo-duarte/binary-brain/internal/config"
	"github.com/saulo-duarte/binary-brain/internal/container"
	"github.com/saulo-duarte/binary-brain/internal/router"
)

func main() {
	c := container.New()

	handler := router.New(router.RouterConfig{
		SessionHandler:  c.SessionContainer.Handler,
		SettingsHandler: c.SettingsContainer.Handler,
		ExplainHandler:  c.ExplainContainer.Handler,
	})

	if c.Config.Serverless {
		adapter := httpadapter.New(handler)
		lambda.Start(func(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
			return adapter.ProxyWithContext(ctx, req)
		})
		return
	}

	addr := ":" + c.Config.Port
	config.Logger.WithField("addr", addr).Info("Starting HTTP server")
	if err := http.ListenAndServe(addr, handler); err != nil {
		config.Logger.WithError(err).Fatal("HTTP server stopped")
	}
}
