package main

import (
	"github.com/rejot-dev/example-microservice/internal/app/orders"
	"github.com/rejot-dev/example-microservice/internal/config"
)

func main() {
	config.MustInit("orders")
	orders.MustNewApp().Run()
}
