// Command lgpssim runs GPS simulation scenarios described by .toml input
// files, grounded on the teacher's init()/parseDir/initTestCases/main()
// driver loop (main.go) and on sim/exp.go's TestCase.output/dumpLogIntoFile
// pair for writing results to disk.
package main

import (
	"context"
	"flag"
	"fmt"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

var scenarios []*Scenario

var (
	inputDir  = flag.String("input", "./input/", "directory of .toml scenario files")
	outputDir = flag.String("output", "./output/", "directory to write departure results to")
	concLevel = flag.Int("conc", 1, "number of scenario iterations to run concurrently")
)

func init() {
	flag.Parse()

	fs, err := parseDir(*inputDir)
	if err != nil {
		log.Fatalln("could not load input dir:", err.Error())
	}
	scenarios, err = initScenarios(fs)
	if err != nil {
		log.Fatalln("could not init scenario:", err.Error())
	}
}

func main() {
	results := runPool(context.Background(), scenarios, *concLevel)
	for _, r := range results {
		if r.Err != nil {
			log.Printf("scenario %s iteration %d failed: %s\n", r.Scenario, r.Iteration, r.Err.Error())
			continue
		}
		if err := writeResult(*outputDir, r); err != nil {
			log.Printf("scenario %s iteration %d: error writing output: %s, ignoring...\n", r.Scenario, r.Iteration, err.Error())
			continue
		}
		fmt.Println(
			"\n====================",
			"\n====", r.Scenario,
			"\nIteration:", r.Iteration,
			"\nPackets dispatched:", len(r.Departures),
			"\nDuration:", r.Duration.String(),
			"\n====================",
		)
	}
}

func parseDir(path string) ([]string, error) {
	ent, err := ioutil.ReadDir(path)
	if err != nil {
		return nil, err
	}

	var fns []string
	for _, f := range ent {
		if !f.IsDir() && strings.Compare(filepath.Ext(f.Name()), ".toml") == 0 {
			fns = append(fns, filepath.Join(path, f.Name()))
		}
	}
	return fns, nil
}

func initScenarios(filenames []string) ([]*Scenario, error) {
	var out []*Scenario
	for _, f := range filenames {
		fd, err := os.Open(f)
		if err != nil {
			return nil, err
		}

		c, err := ioutil.ReadAll(fd)
		fd.Close()
		if err != nil {
			return nil, err
		}

		sc := &Scenario{}
		if err := toml.Unmarshal(c, sc); err != nil {
			return nil, fmt.Errorf("%s: %w", f, err)
		}
		if err := sc.validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", f, err)
		}
		out = append(out, sc)
	}
	return out, nil
}

func writeResult(folder string, r Result) error {
	if _, err := os.Stat(folder); os.IsNotExist(err) {
		if err := os.MkdirAll(folder, 0744); err != nil {
			return err
		}
	}

	name := filepath.Join(folder, r.Scenario+"-iteration-"+strconv.Itoa(r.Iteration)+".out")
	out, err := os.OpenFile(name, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0744)
	if err != nil {
		return err
	}
	defer out.Close()

	for _, d := range r.Departures {
		if _, err := fmt.Fprintf(out, "%s %f %f\n", d.Packet.FlowID, d.Packet.ArrivalTime, d.DepartVTime); err != nil {
			return err
		}
	}
	return nil
}
