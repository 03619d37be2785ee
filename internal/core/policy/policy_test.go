package policy

import (
	"testing"

	"github.com/scribehub/scribehub-api/internal/core/domain"
)

func TestCanRead(t *testing.T) {
	alice := Requester{ID: "u1", Username: "alice", Authenticated: true}
	bob := Requester{ID: "u2", Username: "bob", Authenticated: true}

	tests := []struct {
		name string
		req  Requester
		res  Resource
		want bool
	}{
		{"anonymous reads a post", Anonymous, &domain.Post{AuthorID: "u1"}, true},
		{"anonymous reads an author", Anonymous, &domain.Author{}, true},
		{"anonymous reads a book", Anonymous, &domain.Book{}, true},
		{"owner reads own task", alice, &domain.Task{Owner: "u1"}, true},
		{"other user reads foreign task", bob, &domain.Task{Owner: "u1"}, false},
		{"anonymous reads a task", Anonymous, &domain.Task{Owner: "u1"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanRead(tt.req, tt.res); got != tt.want {
				t.Fatalf("CanRead = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCanWrite(t *testing.T) {
	alice := Requester{ID: "u1", Username: "alice", Authenticated: true}
	bob := Requester{ID: "u2", Username: "bob", Authenticated: true}

	tests := []struct {
		name string
		req  Requester
		res  Resource
		want bool
	}{
		{"anonymous writes a post", Anonymous, &domain.Post{AuthorID: "u1"}, false},
		{"author writes own post", alice, &domain.Post{AuthorID: "u1"}, true},
		{"other user writes foreign post", bob, &domain.Post{AuthorID: "u1"}, false},
		{"owner writes own task", alice, &domain.Task{Owner: "u1"}, true},
		{"other user writes foreign task", bob, &domain.Task{Owner: "u1"}, false},
		{"any authenticated user writes an author", bob, &domain.Author{ID: "a1"}, true},
		{"any authenticated user writes a genre", alice, &domain.Genre{ID: "g1"}, true},
		{"any authenticated user writes a book", bob, &domain.Book{ID: "b1"}, true},
		{"anonymous writes an author", Anonymous, &domain.Author{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanWrite(tt.req, tt.res); got != tt.want {
				t.Fatalf("CanWrite = %v, want %v", got, tt.want)
			}
		})
	}
}
