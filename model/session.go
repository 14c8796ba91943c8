package model

import "time"

type Session struct {
	Id        int64     `json:"id"`
	BasePrice float64   `json:"base_price"`
	StartTime time.Time `json:"start_time"`
	Film      Film      `json:"film"`
	Hall      Hall      `json:"hall"`
}

type Film struct {
	Id    int64  `json:"id"`
	Title string `json:"title"`
}

type Hall struct {
	Id     int64  `json:"id"`
	Name   string `json:"name"`
	Cinema Cinema `json:"cinema"`
}

type Cinema struct {
	Id   int64  `json:"id"`
	Name string `json:"name"`
}
