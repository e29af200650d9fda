package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/parishlabs/tdrms/internal/server"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		fx.Provide(registerSnowflake),
		server.Module,
	)
	app.Run()
}

func registerSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
