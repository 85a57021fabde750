package interpreter

import (
	"ruchy/interpreter-go/pkg/ast"
	"ruchy/interpreter-go/pkg/runtime"
)

func (i *Interpreter) evaluateActorDefinition(node *ast.ActorDefinition, env *runtime.Environment) (runtime.Value, error) {
	def := &runtime.ActorDefinitionValue{
		Name:     node.ID.Name,
		Node:     node,
		Methods:  make(map[string]*runtime.ClosureValue, len(node.Methods)),
		Handlers: make(map[string]*ast.ReceiveHandler, len(node.Handlers)),
		Env:      env,
	}
	if node.Constructor != nil {
		def.Constructor = &runtime.ClosureValue{Declaration: node.Constructor, Env: env}
	}
	for _, method := range node.Methods {
		def.Methods[method.ID.Name] = &runtime.ClosureValue{Declaration: method, Env: env}
	}
	for _, handler := range node.Handlers {
		def.Handlers[handler.MessageType.Name] = handler
	}
	env.Define(def.Name, def)
	return def, nil
}

// evaluateSpawnExpression constructs actor state like a class instance
// and wraps it in the actor's sole handle.
func (i *Interpreter) evaluateSpawnExpression(node *ast.SpawnExpression, env *runtime.Environment) (runtime.Value, error) {
	resolved, err := env.Get(node.Actor.Name)
	if err != nil {
		return nil, err
	}
	def, ok := resolved.(*runtime.ActorDefinitionValue)
	if !ok {
		return nil, runtime.NewFault(runtime.FaultTypeError,
			"spawn requires an actor definition, got %s", resolved.Kind())
	}
	args, err := i.evaluateExpressions(node.Arguments, env)
	if err != nil {
		return nil, err
	}
	names, values, err := i.buildInstanceFields(def.Name, def.Node.Fields, def.Constructor, def.Env, args)
	if err != nil {
		return nil, err
	}
	instance := runtime.NewObjectMut(def.Name, names, values, def.Methods)
	return &runtime.ActorRefValue{Definition: def, Instance: instance}, nil
}

// evaluateSendExpression enqueues a message and drains the mailbox
// unless a handler further up the stack is already draining this
// actor. Send yields Nil.
func (i *Interpreter) evaluateSendExpression(node *ast.SendExpression, env *runtime.Environment) (runtime.Value, error) {
	ref, args, err := i.resolveActorMessage(node.Actor, node.Arguments, env)
	if err != nil {
		return nil, err
	}
	ref.Enqueue(runtime.Message{Type: node.Message.Name, Args: args})
	if err := i.drainMailbox(ref); err != nil {
		return nil, err
	}
	return runtime.NilValue{}, nil
}

// evaluateAskExpression is send plus a reply: it returns the handler
// result for its own message after the mailbox drains up to and past
// it. Asking from inside a handler of the same actor would deadlock on
// the reply, so it faults instead.
func (i *Interpreter) evaluateAskExpression(node *ast.AskExpression, env *runtime.Environment) (runtime.Value, error) {
	ref, args, err := i.resolveActorMessage(node.Actor, node.Arguments, env)
	if err != nil {
		return nil, err
	}
	ahead := ref.PendingCount()
	ref.Enqueue(runtime.Message{Type: node.Message.Name, Args: args})
	if !ref.BeginDrain() {
		return nil, runtime.NewFault(runtime.FaultTypeError,
			"cannot ask actor %s from inside its own handler", ref.Definition.Name)
	}
	defer ref.EndDrain()
	var result runtime.Value = runtime.NilValue{}
	for processed := 0; ; processed++ {
		pending, ok := ref.Dequeue()
		if !ok {
			return result, nil
		}
		val, err := i.runHandler(ref, pending)
		if err != nil {
			return nil, err
		}
		if processed == ahead {
			result = val
		}
	}
}

func (i *Interpreter) resolveActorMessage(actorExpr ast.Expression, argExprs []ast.Expression, env *runtime.Environment) (*runtime.ActorRefValue, []runtime.Value, error) {
	actor, err := i.evaluateExpression(actorExpr, env)
	if err != nil {
		return nil, nil, err
	}
	ref, ok := actor.(*runtime.ActorRefValue)
	if !ok {
		return nil, nil, runtime.NewFault(runtime.FaultTypeError,
			"messages can only be sent to actors, got %s", actor.Kind())
	}
	args, err := i.evaluateExpressions(argExprs, env)
	if err != nil {
		return nil, nil, err
	}
	return ref, args, nil
}

// drainMailbox processes pending messages in FIFO order, one handler at
// a time. A handler that sends to this same actor only enqueues; the
// loop here picks the message up after the handler returns.
func (i *Interpreter) drainMailbox(ref *runtime.ActorRefValue) error {
	if !ref.BeginDrain() {
		return nil
	}
	defer ref.EndDrain()
	for {
		msg, ok := ref.Dequeue()
		if !ok {
			return nil
		}
		if _, err := i.runHandler(ref, msg); err != nil {
			return err
		}
	}
}

// runHandler executes one receive arm to completion with self bound to
// the actor handle and the payload bound positionally.
func (i *Interpreter) runHandler(ref *runtime.ActorRefValue, msg runtime.Message) (runtime.Value, error) {
	handler, ok := ref.Definition.Handlers[msg.Type]
	if !ok {
		return nil, runtime.NewFault(runtime.FaultUndefinedMethod,
			"actor %s has no handler for message '%s'", ref.Definition.Name, msg.Type)
	}
	if len(msg.Args) != len(handler.Params) {
		return nil, runtime.NewFault(runtime.FaultArityMismatch,
			"handler %s.%s expects %d arguments, got %d",
			ref.Definition.Name, msg.Type, len(handler.Params), len(msg.Args))
	}
	handlerEnv := runtime.NewEnvironment(ref.Definition.Env)
	handlerEnv.Define("self", ref)
	for idx, param := range handler.Params {
		if err := i.assignPattern(param.Name, msg.Args[idx], handlerEnv, true); err != nil {
			return nil, patternBindingFault(err)
		}
	}
	result, err := i.evaluateStatements(handler.Body.Body, handlerEnv)
	if err != nil {
		if ret, isReturn := err.(returnSignal); isReturn {
			return ret.value, nil
		}
		if isSignal(err) {
			return nil, reclassifyTopLevelSignal(err)
		}
		return nil, err
	}
	return result, nil
}
