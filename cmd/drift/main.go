// Package main provides the Drift CLI.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
	"k8s.io/klog/v2"

	"github.com/drift-ml/drift/autodiff"
	"github.com/drift-ml/drift/backend/cpu"
	"github.com/drift-ml/drift/loader"
	"github.com/drift-ml/drift/nn"
	"github.com/drift-ml/drift/optim"
	"github.com/drift-ml/drift/tensor"
	"github.com/drift-ml/drift/viz"
)

const version = "v0.1.0-dev"

func main() {
	klog.InitFlags(nil)
	flag.Parse()
	defer klog.Flush()

	args := flag.Args()
	if len(args) == 0 {
		usage()
		return
	}

	var err error
	switch args[0] {
	case "version":
		fmt.Printf("Drift %s\n", version)
	case "train":
		err = runTrain(args[1:])
	case "inspect":
		err = runInspect(args[1:])
	case "dot":
		err = runDot(args[1:])
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", args[0])
		usage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "drift: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Println("Drift - Reverse-Mode Autodiff for Go")
	fmt.Printf("Version: %s\n\n", version)
	fmt.Println("Commands:")
	fmt.Println("  version           Show version")
	fmt.Println("  train             Train the XOR demo network")
	fmt.Println("  inspect <file>    Show the tensors of a weight file")
	fmt.Println("  dot               Print a sample provenance graph in DOT format")
}

// runTrain fits a 2-4-1 MLP to XOR and reports the final predictions.
func runTrain(args []string) error {
	fs := flag.NewFlagSet("train", flag.ExitOnError)
	epochs := fs.Int("epochs", 2000, "Number of training epochs")
	lr := fs.Float64("lr", 0.5, "Learning rate")
	if err := fs.Parse(args); err != nil {
		return err
	}

	ctx := autodiff.NewContext(cpu.New())

	model := nn.NewSequential(
		nn.NewLinear(ctx, 2, 4, true),
		nn.Tanh(),
		nn.NewLinear(ctx, 4, 1, true),
		nn.Sigmoid(),
	)
	opt := optim.NewSGD(model.Parameters(), *lr)

	inputs := []float32{0, 0, 0, 1, 1, 0, 1, 1}
	targets := []float32{0, 1, 1, 0}

	bar := progressbar.Default(int64(*epochs), "training")

	var lastLoss float64
	ctx.Training(func() {
		x := ctx.Tensor(tensor.Shape{4, 2}, inputs)
		y := ctx.Tensor(tensor.Shape{4, 1}, targets)

		for epoch := 0; epoch < *epochs; epoch++ {
			loss := nn.MSE(model.Forward(x), y)
			if err := loss.Backward(nil); err != nil {
				klog.Errorf("backward failed at epoch %d: %v", epoch, err)
				return
			}
			opt.Step()
			lastLoss = loss.Value().Item()
			_ = bar.Add(1)
		}
	})

	fmt.Printf("\nFinal loss: %.6f\n", lastLoss)

	ctx.Inference(func() {
		x := ctx.Tensor(tensor.Shape{4, 2}, inputs)
		pred := model.Forward(x)
		for i := 0; i < 4; i++ {
			fmt.Printf("  %v XOR %v -> %.3f (want %v)\n",
				inputs[i*2], inputs[i*2+1], pred.Value().At(i, 0), targets[i])
		}
	})
	return nil
}

// runInspect prints the tensor inventory of a weight file.
func runInspect(args []string) error {
	fs := flag.NewFlagSet("inspect", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: drift inspect <file>")
	}

	r, err := loader.Open(fs.Arg(0))
	if err != nil {
		return err
	}
	defer r.Close()

	fmt.Println(r.Summary())
	for _, name := range r.Names() {
		t, err := r.Load(name)
		if err != nil {
			return err
		}
		fmt.Printf("  %-40s %v %s\n", name, t.Shape(), t.DType())
	}
	return nil
}

// runDot builds a small tracked expression and prints its provenance graph.
func runDot(args []string) error {
	fs := flag.NewFlagSet("dot", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	ctx := autodiff.NewContext(cpu.New())
	ctx.Training(func() {
		x := ctx.Tensor(tensor.Shape{2, 2}, []float32{1, 2, 3, 4}, true)
		w := ctx.Tensor(tensor.Shape{2, 2}, []float32{0.5, 0, 0, 0.5}, true)
		y := x.MatMul(w).Add(x).Sum()
		fmt.Print(viz.DOT(y))
	})
	return nil
}
