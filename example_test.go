package notifycenter_test

import (
	"fmt"

	"github.com/dmitrymomot/notifycenter"
)

func ExampleHub_Observe() {
	hub := notifycenter.New()
	defer hub.Close()

	token, _ := hub.Observe("com.example.DidSync", nil, func(n notifycenter.Notification) {
		fmt.Println("A got", n.Name)
	})
	_, _ = hub.Observe("com.example.DidSync", nil, func(n notifycenter.Notification) {
		fmt.Println("B got", n.Name)
	})

	hub.Post("com.example.DidSync")
	hub.RemoveObserver(token)
	hub.Post("com.example.DidSync")
	// Output:
	// A got com.example.DidSync
	// B got com.example.DidSync
	// B got com.example.DidSync
}

func ExampleHub_AddObserver() {
	type syncer struct{ name string }

	hub := notifycenter.New()
	defer hub.Close()

	s := &syncer{name: "syncer"}
	_ = hub.AddObserver(s, "com.example.DidLogin", func(n notifycenter.Notification) {
		fmt.Println(s.name, "handles", n.Name)
	})
	_ = hub.AddObserver(s, "com.example.DidLogout", func(n notifycenter.Notification) {
		fmt.Println(s.name, "handles", n.Name)
	})

	hub.Post("com.example.DidLogin")
	hub.RemoveObserver(s)
	hub.Post("com.example.DidLogout")
	// Output:
	// syncer handles com.example.DidLogin
}

func ExampleNewPrefixed() {
	hub := notifycenter.New()
	defer hub.Close()

	_, _ = hub.Observe("com.example.Foo", nil, func(n notifycenter.Notification) {
		fmt.Println(n.Name)
	})

	center := notifycenter.NewPrefixed(hub, ".com.example.")
	center.Post("Foo")
	// Output:
	// com.example.Foo
}
