package main

import (
	"context"
	"net/http"
	"sync"

	"github.com/aws/aws-lambda-go/events"
	awslambda "github.com/aws/aws-lambda-go/lambda"
	"github.com/sirupsen/logrus"

	"github.com/umanari145/blog-backend/internal/handlers"
	"github.com/umanari145/blog-backend/pkg/lambda"
	"github.com/umanari145/blog-backend/pkg/server"
)

// routerCache keeps the router built for the current container so warm
// invocations reuse it along with the store client
type routerCache struct {
	mu        sync.Mutex
	container *server.Container
	router    *lambda.Router
}

func (rc *routerCache) get(container *server.Container) *lambda.Router {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	if rc.router == nil || rc.container != container {
		rc.router = handlers.NewLambdaRouter(&handlers.RouterConfig{
			BlogService:      container.BlogService,
			MenuService:      container.MenuService,
			AuthService:      container.AuthService,
			Logger:           container.Logger,
			ExposeErrorTrace: container.Config.ExposeErrorTrace,
		})
		rc.container = container
	}
	return rc.router
}

var routers = &routerCache{}

func handler(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	container, err := lambda.GetConnectionManager().GetContainer(ctx)
	if err != nil {
		logrus.WithError(err).Error("Failed to initialize container")
		resp, _ := lambda.JSONResponse(http.StatusInternalServerError, handlers.ErrorResponse{
			Error:   err.Error(),
			Message: "Internal server error",
		})
		return resp.ToAPIGateway(), nil
	}

	resp := routers.get(container).Serve(ctx, lambda.NewRequestFromAPIGateway(event))
	return resp.ToAPIGateway(), nil
}

func main() {
	awslambda.Start(handler)
}
