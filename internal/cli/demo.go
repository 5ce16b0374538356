package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/bifrost-labs/bifrost/internal/join"
	"github.com/bifrost-labs/bifrost/internal/relation"
	"github.com/bifrost-labs/bifrost/pkg/models"
)

func (c *CLI) newDemoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Join two small inline tables in every mode",
		Long: `Build two small inline tables (employees and departments) and run
every join mode over them, printing the result rows and the
performance report.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runDemo()
		},
	}
}

// demoTables builds the employee/department pair used by the demo.
// Employee 4 has no department and department 40 has no employees, so
// the outer modes have something to preserve.
func demoTables() (*relation.Table, *relation.Table) {
	employees := relation.NewTable("employees")
	employees.AddColumn("id", relation.TypeInteger)
	employees.AddColumn("name", relation.TypeString)
	employees.AddColumn("dept_id", relation.TypeInteger)
	employees.AddRow(relation.NewRow(relation.Int(1), relation.Text("Alice"), relation.Int(10)))
	employees.AddRow(relation.NewRow(relation.Int(2), relation.Text("Bob"), relation.Int(20)))
	employees.AddRow(relation.NewRow(relation.Int(3), relation.Text("Carol"), relation.Int(20)))
	employees.AddRow(relation.NewRow(relation.Int(4), relation.Text("Dave"), relation.Int(99)))

	departments := relation.NewTable("departments")
	departments.AddColumn("dept_id", relation.TypeInteger)
	departments.AddColumn("dept_name", relation.TypeString)
	departments.AddRow(relation.NewRow(relation.Int(10), relation.Text("Engineering")))
	departments.AddRow(relation.NewRow(relation.Int(20), relation.Text("Sales")))
	departments.AddRow(relation.NewRow(relation.Int(40), relation.Text("Legal")))

	return employees, departments
}

func (c *CLI) runDemo() error {
	strategy, err := c.defaultStrategy()
	if err != nil {
		return c.outputError(err)
	}

	employees, departments := demoTables()
	if !c.jsonOutput {
		employees.PrintSample(os.Stdout, 10)
		departments.PrintSample(os.Stdout, 10)
	}

	var reports []models.JoinReport
	engine := join.NewWithHasher(c.defaultHasher())

	for _, joinType := range []join.Type{join.Inner, join.LeftOuter, join.RightOuter, join.FullOuter} {
		result, err := engine.HashJoin(employees, "dept_id", departments, "dept_id", joinType, strategy)
		if err != nil {
			return c.outputError(err)
		}
		data := engine.Profiler().Data()
		c.logJoin(employees, departments, "dept_id", "dept_id", joinType, strategy, data, nil)

		if c.jsonOutput {
			reports = append(reports, joinReport(employees.Name(), departments.Name(),
				joinType.String(), strategy.String(),
				employees.RowCount(), departments.RowCount(), data))
			continue
		}

		c.printf("--- %s JOIN ---\n", joinType)
		result.PrintSample(os.Stdout, 20)
		engine.Profiler().PrintReport(os.Stdout)
	}

	if c.jsonOutput {
		return c.outputJSON(reports)
	}
	return nil
}
