package handler

import "github.com/gofiber/fiber/v3"

// Guards are placed in front of individual routes. A nil guard leaves the route open.
type Guards struct {
	Auth  fiber.Handler
	Admin fiber.Handler
}

func mount(r fiber.Router, method, path string, guard, h fiber.Handler) {
	if guard == nil {
		r.Add([]string{method}, path, h)
		return
	}
	r.Add([]string{method}, path, guard, h)
}
