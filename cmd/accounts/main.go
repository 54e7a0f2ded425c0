package main

import (
	"github.com/rejot-dev/example-microservice/internal/app/accounts"
	"github.com/rejot-dev/example-microservice/internal/config"
)

func main() {
	config.MustInit("accounts")
	accounts.MustNewApp().Run()
}
