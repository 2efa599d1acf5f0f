package main

import (
	"github.com/holon-run/gitflow/pkg/forge"
	"github.com/holon-run/gitflow/pkg/github"
	"github.com/holon-run/gitflow/pkg/gitlab"
)

func init() {
	if err := forge.Register(github.Name, github.New); err != nil {
		panic(err)
	}
	if err := forge.Register(gitlab.Name, gitlab.New); err != nil {
		panic(err)
	}
}
