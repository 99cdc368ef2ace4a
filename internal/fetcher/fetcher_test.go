package fetcher_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"planctl/internal/fetcher"
)

type delivery struct {
	key   string
	value string
	err   error
}

func TestDeliversCurrentFetch(t *testing.T) {
	got := make(chan delivery, 1)
	f := fetcher.New(func(key, value string, err error) {
		got <- delivery{key, value, err}
	})
	defer f.Close()

	f.Start(context.Background(), "X", func(ctx context.Context) (string, error) {
		return "tree-X", nil
	})

	select {
	case d := <-got:
		if d.key != "X" || d.value != "tree-X" || d.err != nil {
			t.Errorf("delivery = %+v", d)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("fetch never delivered")
	}
}

func TestStaleResponseIsDiscarded(t *testing.T) {
	got := make(chan delivery, 2)
	f := fetcher.New(func(key, value string, err error) {
		got <- delivery{key, value, err}
	})
	defer f.Close()

	releaseX := make(chan struct{})
	xStarted := make(chan struct{})

	// Fetch for X is in flight...
	f.Start(context.Background(), "X", func(ctx context.Context) (string, error) {
		close(xStarted)
		<-releaseX
		return "tree-X", nil
	})
	<-xStarted

	// ...when the view is re-navigated to Y, and Y resolves first.
	f.Start(context.Background(), "Y", func(ctx context.Context) (string, error) {
		return "tree-Y", nil
	})

	d := <-got
	if d.key != "Y" || d.value != "tree-Y" {
		t.Fatalf("first delivery = %+v, want Y", d)
	}

	// The late X response must not be applied.
	close(releaseX)
	select {
	case d := <-got:
		t.Fatalf("stale response delivered: %+v", d)
	case <-time.After(200 * time.Millisecond):
	}
	if f.Key() != "Y" {
		t.Errorf("current key = %q, want Y", f.Key())
	}
}

func TestSupersededContextIsCancelled(t *testing.T) {
	f := fetcher.New(func(key, value string, err error) {})
	defer f.Close()

	cancelled := make(chan struct{})
	started := make(chan struct{})
	f.Start(context.Background(), "X", func(ctx context.Context) (string, error) {
		close(started)
		<-ctx.Done()
		close(cancelled)
		return "", ctx.Err()
	})
	<-started

	f.Start(context.Background(), "Y", func(ctx context.Context) (string, error) {
		return "tree-Y", nil
	})

	select {
	case <-cancelled:
	case <-time.After(2 * time.Second):
		t.Fatal("superseded fetch context was never cancelled")
	}
}

func TestFailuresOfStaleFetchesAreAlsoDiscarded(t *testing.T) {
	got := make(chan delivery, 2)
	f := fetcher.New(func(key, value string, err error) {
		got <- delivery{key, value, err}
	})
	defer f.Close()

	release := make(chan struct{})
	started := make(chan struct{})
	f.Start(context.Background(), "X", func(ctx context.Context) (string, error) {
		close(started)
		<-release
		return "", errors.New("boom")
	})
	<-started
	f.Start(context.Background(), "Y", func(ctx context.Context) (string, error) {
		return "tree-Y", nil
	})
	if d := <-got; d.key != "Y" {
		t.Fatalf("delivery = %+v", d)
	}
	close(release)
	select {
	case d := <-got:
		t.Fatalf("stale failure delivered: %+v", d)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestCloseSuppressesDelivery(t *testing.T) {
	got := make(chan delivery, 1)
	f := fetcher.New(func(key, value string, err error) {
		got <- delivery{key, value, err}
	})

	release := make(chan struct{})
	started := make(chan struct{})
	f.Start(context.Background(), "X", func(ctx context.Context) (string, error) {
		close(started)
		<-release
		return "tree-X", nil
	})
	<-started
	f.Close()
	close(release)

	select {
	case d := <-got:
		t.Fatalf("delivery after Close: %+v", d)
	case <-time.After(200 * time.Millisecond):
	}
}
