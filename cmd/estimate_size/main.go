package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/td0m/desktasks/pkg/persist"
	"github.com/td0m/desktasks/pkg/task"
)

var (
	years   = flag.Int("years", 10, "Years of tasks to generate")
	perDay  = flag.Int("per-day", 30, "Tasks created per day")
	backend = flag.String("backend", persist.KindFile, "Storage backend to measure (file, sqlite, memory)")
)

func main() {
	flag.Parse()

	dir, err := os.MkdirTemp("", "desktasks-size")
	check(err)
	defer os.RemoveAll(dir)

	b, err := persist.Open(*backend, dir)
	check(err)
	defer b.Close()

	total := 365 * *perDay * *years
	start := time.Now().AddDate(-*years, 0, 0)
	tasks := make([]task.Task, total)
	for i := range tasks {
		created := start.Add(time.Duration(i) * 24 * time.Hour / time.Duration(*perDay))
		tasks[i] = task.Task{
			ID:        task.NewID(),
			Title:     randomString(30),
			Completed: rand.Intn(4) > 0,
			Priority:  task.Priorities[rand.Intn(len(task.Priorities))],
			Category:  task.DefaultCategories[rand.Intn(len(task.DefaultCategories))],
			DueDate:   created.AddDate(0, 0, rand.Intn(14)).Format("2006-01-02"),
			CreatedAt: created,
			UpdatedAt: created,
		}
	}

	var size int
	writeTime := measureTime(func() {
		bs, err := task.Encode(tasks)
		check(err)
		size = len(bs)
		check(b.Set(task.StorageKey, bs))
	})

	readTime := measureTime(func() {
		bs, err := b.Get(task.StorageKey)
		check(err)
		_, err = task.Decode(bs)
		check(err)
	})

	fmt.Printf("Tasks: %d years, %d per day (%d total)\n", *years, *perDay, total)
	fmt.Printf("Backend: %s\n", *backend)
	fmt.Printf("Encoded size: %dMB\n", size/1024/1024)
	fmt.Printf("Write time: %dms\n", writeTime.Milliseconds())
	fmt.Printf("Read time: %dms\n", readTime.Milliseconds())
}

func check(err error) {
	if err != nil {
		panic(err)
	}
}

func measureTime(fn func()) time.Duration {
	start := time.Now()
	fn()
	return time.Since(start)
}

const letters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789 "

func randomString(l int) string {
	b := make([]byte, l)
	for i := range b {
		b[i] = letters[rand.Intn(len(letters))]
	}
	return string(b)
}
