// Package mocks provides mock implementations for testing the storefront client.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for the port interfaces.
// The mocks are generated using go:generate directives and provide a fluent API for setting up test expectations.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	store := mocks.NewMockStorage(ctrl)
//	store.EXPECT().GetItem(gomock.Any(), "auth_token").Return("T1", nil)
package mocks

// Generate mock for Storage interface from internal/ports package.
// This creates MockStorage with methods: GetItem, SetItem, RemoveItem
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=storage_mock.go github.com/target/storefront-client/internal/ports Storage

// Generate mock for Navigator interface from internal/ports package.
// This creates MockNavigator with methods: CurrentPath, Redirect
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=navigator_mock.go github.com/target/storefront-client/internal/ports Navigator

// Generate mock for UserAPI interface from internal/ports package.
// This creates MockUserAPI with methods: SignUp, SignIn
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=user_api_mock.go github.com/target/storefront-client/internal/ports UserAPI
