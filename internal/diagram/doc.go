// Package diagram implements the render and validate operations exposed as MCP tools.
//
// A [Service] wraps a [plantuml.Renderer] and an output directory. It never
// returns Go errors from its operations: renderer failures, unreadable input
// files and unwritable output paths all come back as a [RenderResult] with
// Success set to false, and validation findings come back as a
// [ValidationResult]. Callers serialize those results directly.
//
// # Rendering
//
//	svc, err := diagram.NewService(renderer, "output")
//	res := svc.Render(ctx, diagram.RenderRequest{
//	    Text:   "@startuml\nAlice -> Bob\n@enduml",
//	    Format: "svg",
//	})
//	// res.Path = ".../output/diagram_<md5>_<millis>.svg"
//
// # Validation
//
// Validate combines two directive checks with a txt probe render. See
// [Service.Validate] for how the message is chosen.
package diagram
