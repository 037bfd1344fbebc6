// Command slabctl exercises slabkit block pools from the command line.
package main

func main() {
	execute()
}
