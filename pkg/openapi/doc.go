// Package openapi turns OpenAPI documents into record definitions. Component
// schemas become record shapes, and vendor extensions carry presenter hints
// such as hidden attributes and key casing.
package openapi
