package main

import "github.com/vivekkr1809/ml-data-pipeline-visualization/cmd"

func main() {
	cmd.Execute()
}
