package main

// General API documentation for swaggo. Run `make swagger-gen` to generate docs.
//
// @title           evald API
// @version         1.0
// @description     HTTP gateway for batch completion/evaluation jobs against a single sequence-model engine.
//
// @contact.name   evald maintainers
//
// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT
//
// @BasePath  /
//
// @schemes http
