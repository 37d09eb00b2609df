package main

//go:generate swag init -g cmd/kiroku/serve.go -o docs

// @title           Kiroku API
// @version         0.1.0
// @description     Personal anime tracking: auth, watch lists, Jikan catalog passthrough and import.
// @host            localhost:3000
// @BasePath        /
// @schemes         http
