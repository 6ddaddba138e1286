package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql"

	"github.com/sayahatkz/sayahat/internal/core/domain"
)

type gqlCtxKey string

const gqlUserKey gqlCtxKey = "gql_user"

// gqlUser returns the authenticated user ID carried in the resolver context.
func gqlUser(ctx context.Context) string {
	id, _ := ctx.Value(gqlUserKey).(string)
	return id
}

// buildSchema creates the GraphQL schema wired to our services.
func buildSchema(deps *Dependencies) (graphql.Schema, error) {
	coordinatesType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Coordinates",
		Fields: graphql.Fields{
			"lat": &graphql.Field{Type: graphql.Float},
			"lng": &graphql.Field{Type: graphql.Float},
		},
	})

	placeType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Place",
		Fields: graphql.Fields{
			"id":          &graphql.Field{Type: graphql.String},
			"name":        &graphql.Field{Type: graphql.String},
			"city":        &graphql.Field{Type: graphql.String},
			"city_id":     &graphql.Field{Type: graphql.String},
			"location":    &graphql.Field{Type: coordinatesType},
			"category":    &graphql.Field{Type: graphql.NewList(graphql.String)},
			"price_kzt":   &graphql.Field{Type: graphql.Float},
			"stars":       &graphql.Field{Type: graphql.Float},
			"distance_km": &graphql.Field{Type: graphql.Float},
		},
	})

	planLocationType := graphql.NewObject(graphql.ObjectConfig{
		Name: "PlanLocation",
		Fields: graphql.Fields{
			"name": &graphql.Field{Type: graphql.String},
			"lat":  &graphql.Field{Type: graphql.Float},
			"lng":  &graphql.Field{Type: graphql.Float},
		},
	})

	planType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Plan",
		Fields: graphql.Fields{
			"id":          &graphql.Field{Type: graphql.String},
			"title":       &graphql.Field{Type: graphql.String},
			"date":        &graphql.Field{Type: graphql.String},
			"description": &graphql.Field{Type: graphql.String},
			"locations":   &graphql.Field{Type: graphql.NewList(planLocationType)},
		},
	})

	noteType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Note",
		Fields: graphql.Fields{
			"id":      &graphql.Field{Type: graphql.String},
			"title":   &graphql.Field{Type: graphql.String},
			"content": &graphql.Field{Type: graphql.String},
			"type":    &graphql.Field{Type: graphql.String},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"places": &graphql.Field{
				Type:        graphql.NewList(placeType),
				Description: "Search places by text, city, and category",
				Args: graphql.FieldConfigArgument{
					"query":    &graphql.ArgumentConfig{Type: graphql.String, DefaultValue: ""},
					"city":     &graphql.ArgumentConfig{Type: graphql.String, DefaultValue: ""},
					"category": &graphql.ArgumentConfig{Type: graphql.String, DefaultValue: ""},
					"lat":      &graphql.ArgumentConfig{Type: graphql.Float},
					"lng":      &graphql.ArgumentConfig{Type: graphql.Float},
					"limit":    &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 50},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					var coords *domain.Coordinates
					if lat, ok := p.Args["lat"].(float64); ok {
						if lng, ok := p.Args["lng"].(float64); ok {
							coords = &domain.Coordinates{Lat: lat, Lng: lng}
						}
					}
					res, err := deps.Places.Search(p.Context,
						p.Args["query"].(string),
						p.Args["city"].(string),
						p.Args["category"].(string),
						coords,
						p.Args["limit"].(int),
					)
					if err != nil {
						return nil, err
					}
					return res.Places, nil
				},
			},
			"placesByCategory": &graphql.Field{
				Type:        graphql.NewList(placeType),
				Description: "List places for a named category",
				Args: graphql.FieldConfigArgument{
					"category": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"city":     &graphql.ArgumentConfig{Type: graphql.String, DefaultValue: "all"},
					"limit":    &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 50},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					res, err := deps.Places.ByCategory(p.Context,
						p.Args["category"].(string),
						p.Args["city"].(string),
						nil,
						p.Args["limit"].(int),
					)
					if err != nil {
						return nil, err
					}
					return res.Places, nil
				},
			},
			"plans": &graphql.Field{
				Type:        graphql.NewList(planType),
				Description: "List the authenticated user's plans",
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					userID := gqlUser(p.Context)
					if userID == "" {
						return []domain.Plan{}, nil
					}
					return deps.Plans.List(p.Context, userID)
				},
			},
			"notes": &graphql.Field{
				Type:        graphql.NewList(noteType),
				Description: "List the authenticated user's notes",
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					userID := gqlUser(p.Context)
					if userID == "" {
						return []domain.Note{}, nil
					}
					return deps.Notes.List(p.Context, userID)
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query: queryType,
	})
}

// GraphQLHandler serves the GraphQL endpoint.
func GraphQLHandler(deps *Dependencies) fiber.Handler {
	schema, err := buildSchema(deps)
	if err != nil {
		// This would be a programming error in the schema definition
		panic("graphql schema build: " + err.Error())
	}

	type gqlRequest struct {
		Query         string                 `json:"query"`
		OperationName string                 `json:"operationName"`
		Variables     map[string]interface{} `json:"variables"`
	}

	return func(c *fiber.Ctx) error {
		var req gqlRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "invalid request body"})
		}

		ctx := context.WithValue(c.UserContext(), gqlUserKey, currentUser(c))

		result := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  req.Query,
			VariableValues: req.Variables,
			OperationName:  req.OperationName,
			Context:        ctx,
		})

		return c.JSON(result)
	}
}
